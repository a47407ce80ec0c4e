package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
)

// BalanceChart draws remaining mortgage balance per year as vertical bars
type BalanceChart struct {
	Title  string
	Height int
	points []float64
	labels []string
}

// NewBalanceChart samples the schedule's balance at the end of every year
func NewBalanceChart(title string, schedule []domain.AmortizationRow) *BalanceChart {
	c := &BalanceChart{Title: title, Height: 8}
	for _, row := range schedule {
		if row.Month%12 == 0 || row.Month == len(schedule) {
			c.points = append(c.points, row.Balance.InexactFloat64())
			c.labels = append(c.labels, fmt.Sprint((row.Month+11)/12))
		}
	}
	return c
}

// Points returns the sampled year-end balances
func (c *BalanceChart) Points() []float64 {
	return c.points
}

// Render returns the chart, or a note when there is nothing to draw
func (c *BalanceChart) Render() string {
	if len(c.points) == 0 {
		return tuistyles.InfoStyle.Render("No schedule to display")
	}

	top := 0.0
	for _, p := range c.points {
		top = max(top, p)
	}
	if top == 0 {
		top = 1
	}

	bar := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.SectionStyle.Render(c.Title))
		out.WriteString("\n")
	}

	for level := c.Height; level >= 1; level-- {
		threshold := top * float64(level) / float64(c.Height)
		if level == c.Height {
			out.WriteString(axis.Render(fmt.Sprintf("%7s │", formatChartValue(top))))
		} else {
			out.WriteString(axis.Render("        │"))
		}
		for _, p := range c.points {
			if p >= threshold-top/float64(2*c.Height) {
				out.WriteString(bar.Render("█"))
			} else {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")
	}
	out.WriteString(axis.Render("      0 └" + strings.Repeat("─", len(c.points))))
	if n := len(c.labels); n > 1 {
		out.WriteString("\n")
		out.WriteString(axis.Render(fmt.Sprintf("         1%*s", n-1, c.labels[n-1])))
	}
	return out.String()
}

func formatChartValue(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("$%.0fK", value/1_000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}
