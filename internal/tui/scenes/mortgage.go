package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/tui/components"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuimsg"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
)

const (
	sliderPrice = iota
	sliderDown
	sliderRate
	sliderYears
)

// MortgageModel is the interactive payment calculator. Every slider change
// recomputes the payment and schedule.
type MortgageModel struct {
	sliders []*components.Slider
	focused int
	width   int
	height  int

	downPayment decimal.Decimal
	minimumDown decimal.Decimal
	insurance   decimal.Decimal
	summary     *domain.MortgageSummary
}

// NewMortgageModel starts from the given engine assumptions
func NewMortgageModel(assumptions calculation.Assumptions) *MortgageModel {
	m := &MortgageModel{
		sliders: []*components.Slider{
			components.NewSlider("Home Price", 600000, 100000, 2500000, 10000).WithFormat("$", "%.0f", ""),
			components.NewSlider("Down Payment", 20, 5, 100, 1).WithFormat("", "%.0f", "%"),
			components.NewSlider("Interest Rate", assumptions.MortgageRatePercent.InexactFloat64(), 0, 15, 0.05).WithFormat("", "%.2f", "%"),
			components.NewSlider("Amortization", float64(assumptions.AmortizationYears), 5, 30, 1).WithFormat("", "%.0f", " years"),
		},
	}
	m.sliders[0].IsFocused = true
	m.recalculate()
	return m
}

// SetSize updates the scene dimensions
func (m *MortgageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Summary returns the latest calculation
func (m *MortgageModel) Summary() *domain.MortgageSummary {
	return m.summary
}

// Slider returns the slider at index i
func (m *MortgageModel) Slider(i int) *components.Slider {
	return m.sliders[i]
}

// Focused returns the index of the focused slider
func (m *MortgageModel) Focused() int {
	return m.focused
}

// Update handles slider navigation and adjustment
func (m *MortgageModel) Update(msg tea.Msg) (*MortgageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k", "shift+tab"))):
		m.focus(m.focused - 1)
		return m, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		m.focus(m.focused + 1)
		return m, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l", "+"))):
		m.sliders[m.focused].Increment()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h", "-"))):
		m.sliders[m.focused].Decrement()
	default:
		return m, nil
	}

	m.recalculate()
	payment := tuistyles.FormatCurrency(m.summary.MonthlyPayment)
	return m, func() tea.Msg {
		return tuimsg.StatusMsg{Text: "Monthly payment " + payment}
	}
}

func (m *MortgageModel) focus(i int) {
	m.sliders[m.focused].IsFocused = false
	n := len(m.sliders)
	m.focused = (i%n + n) % n
	m.sliders[m.focused].IsFocused = true
}

func (m *MortgageModel) recalculate() {
	price := m.sliders[sliderPrice].Decimal()
	downPct := m.sliders[sliderDown].Decimal()

	m.downPayment = price.Mul(downPct).Div(decimal.NewFromInt(100)).Round(2)
	m.minimumDown = calculation.MinimumDownPayment(price)
	m.insurance = calculation.MortgageInsurancePremium(price, downPct)

	principal := price.Sub(m.downPayment).Add(m.insurance)
	m.summary = calculation.SummarizeMortgage(principal, m.sliders[sliderRate].Decimal(),
		int(m.sliders[sliderYears].Value), true)
}

// View renders sliders, result cards and the balance chart
func (m *MortgageModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.SectionStyle.Render("Mortgage Calculator"))
	content.WriteString("\n\n")
	for _, s := range m.sliders {
		content.WriteString(s.Render())
		content.WriteString("\n")
	}
	content.WriteString("\n")

	cards := []*components.MetricCard{
		components.NewMetricCard("Monthly Payment", tuistyles.FormatCurrency(m.summary.MonthlyPayment)),
		components.NewMetricCard("Mortgage Amount", tuistyles.FormatCurrency(m.summary.Principal)),
		components.NewMetricCard("Total Interest", tuistyles.FormatCurrency(m.summary.TotalInterest)),
	}
	if m.insurance.IsPositive() {
		cards = append(cards, components.NewMetricCard("CMHC Insurance", tuistyles.FormatCurrency(m.insurance)).
			WithDescription("added to the mortgage"))
	}
	content.WriteString(components.MetricGrid(cards, 4))
	content.WriteString("\n")

	if m.downPayment.LessThan(m.minimumDown) {
		content.WriteString(tuistyles.WarningStyle.Render(fmt.Sprintf(
			"⚠ Down payment %s is below the minimum of %s",
			tuistyles.FormatCurrency(m.downPayment), tuistyles.FormatCurrency(m.minimumDown))))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(components.NewBalanceChart("Balance by Year", m.summary.Schedule).Render())
	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("↑↓ select • ←→ adjust"))

	return tuistyles.BorderStyle.Render(content.String())
}
