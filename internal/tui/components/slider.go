package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Slider is a bounded numeric input adjusted in fixed steps
type Slider struct {
	Label     string
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Format    string // printf verb for the value, e.g. "%.2f"
	Prefix    string
	Suffix    string
	Width     int
	IsFocused bool
}

// NewSlider creates a slider clamped to [min, max]
func NewSlider(label string, value, min, max, step float64) *Slider {
	s := &Slider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.0f",
		Width:  30,
	}
	s.SetValue(value)
	return s
}

// WithFormat sets the printf format and the prefix and suffix around it
func (s *Slider) WithFormat(prefix, format, suffix string) *Slider {
	s.Prefix = prefix
	s.Format = format
	s.Suffix = suffix
	return s
}

// Increment moves one step up
func (s *Slider) Increment() { s.SetValue(s.Value + s.Step) }

// Decrement moves one step down
func (s *Slider) Decrement() { s.SetValue(s.Value - s.Step) }

// SetValue clamps v into range and snaps it to the step grid
func (s *Slider) SetValue(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	s.Value = math.Max(s.Min, math.Min(s.Max, v))
}

// Decimal returns the value rounded to four places
func (s *Slider) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(s.Value).Round(4)
}

// Percentage is the slider position in [0, 1]
func (s *Slider) Percentage() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Text is the formatted value
func (s *Slider) Text() string {
	if s.Prefix == "$" {
		return strings.TrimSuffix(tuistyles.FormatCurrency(decimal.NewFromFloat(s.Value).Round(0)), ".00") + s.Suffix
	}
	return s.Prefix + fmt.Sprintf(s.Format, s.Value) + s.Suffix
}

// Render draws one line: label, value and bar
func (s *Slider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	thumbStyle := tuistyles.SliderThumbStyle
	cursor := "  "
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
		cursor = "▸ "
	}

	filled := int(math.Round(float64(s.Width) * s.Percentage()))
	filled = max(0, min(s.Width, filled))

	var bar strings.Builder
	bar.WriteString("[")
	for i := range s.Width {
		switch {
		case i == filled || (i == s.Width-1 && filled == s.Width):
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")

	label := lipgloss.NewStyle().Width(24).Render(labelStyle.Render(cursor + s.Label))
	value := lipgloss.NewStyle().Width(14).Render(valueStyle.Render(s.Text()))
	return label + value + bar.String()
}
