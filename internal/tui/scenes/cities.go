package scenes

import (
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
)

// CitiesModel is a browsable table of the city reference data
type CitiesModel struct {
	table  table.Model
	cities []domain.CityCostRecord
}

// NewCitiesModel lists cities from most to least expensive
func NewCitiesModel(cities []domain.CityCostRecord) *CitiesModel {
	sorted := append([]domain.CityCostRecord(nil), cities...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgHomePrice.GreaterThan(sorted[j].AvgHomePrice)
	})

	rows := make([]table.Row, 0, len(sorted))
	for _, c := range sorted {
		rows = append(rows, table.Row{
			c.Name,
			c.Province,
			tuistyles.FormatCurrency(c.AvgHomePrice.Round(0)),
			tuistyles.FormatCurrency(c.AvgRent.Round(0)),
			c.CostMultiplier.StringFixed(2),
		})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "City", Width: 16},
			{Title: "Prov", Width: 5},
			{Title: "Home Price", Width: 15},
			{Title: "Rent / mo", Width: 12},
			{Title: "Cost Index", Width: 10},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)

	return &CitiesModel{table: t, cities: sorted}
}

// SetSize fits the table to the terminal height
func (m *CitiesModel) SetSize(width, height int) {
	if height > 12 {
		m.table.SetHeight(height - 10)
	}
}

// Selected returns the highlighted city
func (m *CitiesModel) Selected() (domain.CityCostRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.cities) {
		return domain.CityCostRecord{}, false
	}
	return m.cities[i], true
}

// Update forwards navigation keys to the table
func (m *CitiesModel) Update(msg tea.Msg) (*CitiesModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table
func (m *CitiesModel) View() string {
	header := tuistyles.SectionStyle.Render("City Reference Data")
	hint := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("↑↓ browse • enter analyze in affordability")
	return tuistyles.BorderStyle.Render(header + "\n\n" + m.table.View() + "\n\n" + hint)
}
