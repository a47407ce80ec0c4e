package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
)

// MetricCard displays a single figure with a label and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	ValueStyle  *lipgloss.Style
	Width       int
}

// Trend is a directional note under the value
type Trend struct {
	Up         bool
	Favourable bool
	Change     string
}

// NewMetricCard creates a card of the default width
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTrend adds a trend arrow and change text
func (m *MetricCard) WithTrend(up, favourable bool, change string) *MetricCard {
	m.Trend = &Trend{Up: up, Favourable: favourable, Change: change}
	return m
}

// WithDescription adds a muted subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithValueStyle overrides the value style
func (m *MetricCard) WithValueStyle(style lipgloss.Style) *MetricCard {
	m.ValueStyle = &style
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	valueStyle := tuistyles.MetricValueStyle
	if m.ValueStyle != nil {
		valueStyle = *m.ValueStyle
	}
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)

	if m.Trend != nil {
		style := tuistyles.MetricTrendStyle(m.Trend.Favourable)
		content += "\n" + style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.Up), m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.MetricLabelStyle.Italic(true).Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out in rows of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
