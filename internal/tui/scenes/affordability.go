package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/tui/components"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuimsg"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
)

// Affordability form fields
const (
	FieldIncome = iota
	FieldDebts
	FieldDown
	FieldCity
)

var (
	fieldLabels = []string{"Annual Income", "Monthly Debts", "Down Payment %", "City or Postal Code"}
	fieldKeys   = []string{"annual_income", "monthly_debts", "down_payment_percent", "city"}
)

// AffordabilityModel runs the housing analyzer for a city
type AffordabilityModel struct {
	engine  *calculation.Engine
	inputs  []textinput.Model
	focused int
	width   int
	height  int
	result  *domain.CalculationResult
}

// NewAffordabilityModel creates the form with sensible starting values
func NewAffordabilityModel(engine *calculation.Engine) *AffordabilityModel {
	m := &AffordabilityModel{engine: engine}
	defaults := []string{"120000", "0", "20", "Toronto"}
	for i, label := range fieldLabels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 32
		ti.Width = 20
		ti.SetValue(defaults[i])
		m.inputs = append(m.inputs, ti)
	}
	m.inputs[0].Focus()
	return m
}

// SetSize updates the scene dimensions
func (m *AffordabilityModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Result returns the latest analysis
func (m *AffordabilityModel) Result() *domain.CalculationResult {
	return m.result
}

// SetField replaces the text of input i
func (m *AffordabilityModel) SetField(i int, value string) {
	m.inputs[i].SetValue(value)
}

// Update moves between fields, forwards typing and calculates on enter
func (m *AffordabilityModel) Update(msg tea.Msg) (*AffordabilityModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "shift+tab"))):
			m.focus(m.focused - 1)
			return m, nil
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "tab"))):
			m.focus(m.focused + 1)
			return m, nil
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			return m, m.calculate()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *AffordabilityModel) focus(i int) {
	m.inputs[m.focused].Blur()
	n := len(m.inputs)
	m.focused = (i%n + n) % n
	m.inputs[m.focused].Focus()
}

// input parses the form; the city field is treated as a postal code when it
// starts with a letter followed by a digit
func (m *AffordabilityModel) input() (domain.FinancialInput, error) {
	var in domain.FinancialInput
	for i, dst := range []*decimal.Decimal{&in.AnnualIncome, &in.MonthlyDebts, &in.DownPaymentPercent} {
		raw := strings.NewReplacer(",", "", "$", "", "%", "").Replace(strings.TrimSpace(m.inputs[i].Value()))
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return in, domain.NewValidationError(fieldKeys[i], "must be a number")
		}
		*dst = v
	}

	place := strings.TrimSpace(m.inputs[FieldCity].Value())
	if len(place) >= 2 && isLetter(place[0]) && place[1] >= '0' && place[1] <= '9' {
		in.PostalCode = place
	} else {
		in.City = place
	}
	return in, nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (m *AffordabilityModel) calculate() tea.Cmd {
	in, err := m.input()
	if err == nil {
		m.result, err = m.engine.AnalyzeHousing(in)
	}
	if err != nil {
		m.result = nil
		return func() tea.Msg { return tuimsg.ErrorMsg{Err: err} }
	}

	text := fmt.Sprintf("%s: %s", m.result.City, m.result.Classification)
	return tea.Batch(
		func() tea.Msg { return tuimsg.ClearErrorMsg{} },
		func() tea.Msg { return tuimsg.StatusMsg{Text: text} },
	)
}

// View renders the form and, after a calculation, the verdict
func (m *AffordabilityModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.SectionStyle.Render("Housing Affordability"))
	content.WriteString("\n\n")
	for i, ti := range m.inputs {
		style := tuistyles.UnselectedItemStyle
		cursor := "  "
		if i == m.focused {
			style = tuistyles.SelectedItemStyle
			cursor = "▸ "
		}
		content.WriteString(lipgloss.NewStyle().Width(24).Render(style.Render(cursor + fieldLabels[i])))
		content.WriteString(ti.View())
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if m.result != nil {
		content.WriteString(m.renderResult())
		content.WriteString("\n\n")
	}
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("tab next field • enter calculate"))

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *AffordabilityModel) renderResult() string {
	r := m.result
	var content strings.Builder

	verdict := tuistyles.ClassificationStyle(string(r.Classification)).Render(strings.ToUpper(string(r.Classification)))
	content.WriteString(fmt.Sprintf("%s, %s  %s\n", r.City, r.Province, verdict))

	if r.Classification == domain.ClassInsufficientData {
		content.WriteString(tuistyles.InfoStyle.Render("Enter an income to classify this purchase"))
		return content.String()
	}

	ratioCard := func(label string, ratio domain.AffordabilityRatio) *components.MetricCard {
		return components.NewMetricCard(label, ratio.Ratio.StringFixed(1)+"%").
			WithTrend(!ratio.WithinThreshold, ratio.WithinThreshold, "limit "+ratio.Threshold.StringFixed(0)+"%")
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Home Price", tuistyles.FormatCurrency(r.HomePrice)),
		components.NewMetricCard("Housing / mo", tuistyles.FormatCurrency(r.MonthlyHousingCost)),
		ratioCard("GDS", r.GDS),
		ratioCard("TDS", r.TDS),
		components.NewMetricCard("Max Affordable", tuistyles.FormatCurrency(r.MaxAffordablePrice)),
		components.NewMetricCard("Income Needed", tuistyles.FormatCurrency(r.RecommendedIncome)),
	}
	content.WriteString(components.MetricGrid(cards, 3))

	for _, w := range r.Warnings {
		content.WriteString("\n")
		content.WriteString(tuistyles.WarningStyle.Render("⚠ " + w))
	}
	return content.String()
}
