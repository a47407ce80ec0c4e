package scenes

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuimsg"
)

func newEngine(t *testing.T) *calculation.Engine {
	t.Helper()
	e, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	return e
}

func press(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func TestMortgageModel_Defaults(t *testing.T) {
	m := NewMortgageModel(newEngine(t).Assumptions)

	s := m.Summary()
	require.NotNil(t, s)
	assert.Equal(t, "480000", s.Principal.String())
	assert.Equal(t, 25, s.Years)
	assert.InDelta(t, 2947.62, s.MonthlyPayment.InexactFloat64(), 0.02)
	assert.Len(t, s.Schedule, 300)
	assert.Equal(t, 0, m.Focused())
}

func TestMortgageModel_AdjustDownPayment(t *testing.T) {
	m := NewMortgageModel(newEngine(t).Assumptions)

	m, _ = m.Update(press(tea.KeyDown))
	require.Equal(t, sliderDown, m.Focused())
	for range 10 {
		m, _ = m.Update(press(tea.KeyLeft))
	}

	assert.Equal(t, float64(10), m.Slider(sliderDown).Value)
	assert.Equal(t, "556740", m.Summary().Principal.String(), "3.1% insurance premium is added")
	assert.Contains(t, m.View(), "CMHC Insurance")
}

func TestMortgageModel_BelowMinimumDown(t *testing.T) {
	m := NewMortgageModel(newEngine(t).Assumptions)

	m, _ = m.Update(press(tea.KeyDown))
	for range 20 {
		m, _ = m.Update(press(tea.KeyLeft))
	}
	assert.Equal(t, float64(5), m.Slider(sliderDown).Value, "clamped at the minimum")
	assert.Contains(t, m.View(), "below the minimum")
}

func TestMortgageModel_StatusMessage(t *testing.T) {
	m := NewMortgageModel(newEngine(t).Assumptions)

	m, cmd := m.Update(press(tea.KeyRight))
	require.NotNil(t, cmd)
	status, ok := cmd().(tuimsg.StatusMsg)
	require.True(t, ok)
	assert.Contains(t, status.Text, "Monthly payment $")
	assert.Equal(t, float64(610000), m.Slider(sliderPrice).Value)

	_, cmd = m.Update(press(tea.KeyUp))
	assert.Nil(t, cmd)
}

func TestMortgageModel_FocusWraps(t *testing.T) {
	m := NewMortgageModel(newEngine(t).Assumptions)

	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, sliderYears, m.Focused())
	m, _ = m.Update(press(tea.KeyTab))
	assert.Equal(t, sliderPrice, m.Focused())
}

func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestAffordabilityModel_Calculate(t *testing.T) {
	m := NewAffordabilityModel(newEngine(t))
	m.SetField(FieldIncome, "150,000")
	m.SetField(FieldCity, "Calgary")

	m, cmd := m.Update(press(tea.KeyEnter))
	require.NotNil(t, m.Result())
	assert.Equal(t, "Calgary", m.Result().City)
	assert.Equal(t, domain.ClassAffordable, m.Result().Classification)

	msgs := runCmd(t, cmd)
	assert.Contains(t, msgs, tuimsg.ClearErrorMsg{})
	assert.Contains(t, msgs, tuimsg.StatusMsg{Text: "Calgary: affordable"})
	assert.Contains(t, m.View(), "AFFORDABLE")
}

func TestAffordabilityModel_PostalCode(t *testing.T) {
	m := NewAffordabilityModel(newEngine(t))
	m.SetField(FieldCity, "B3H 1A1")

	m, _ = m.Update(press(tea.KeyEnter))
	require.NotNil(t, m.Result())
	assert.Equal(t, "Halifax", m.Result().City)
}

func TestAffordabilityModel_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
		check func(t *testing.T, err error)
	}{
		{"bad number", FieldIncome, "lots", func(t *testing.T, err error) {
			ve, ok := domain.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, "annual_income", ve.Field)
		}},
		{"unknown city", FieldCity, "Gotham", func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, domain.ErrInsufficientData))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAffordabilityModel(newEngine(t))
			m.SetField(tt.field, tt.value)

			m, cmd := m.Update(press(tea.KeyEnter))
			assert.Nil(t, m.Result())
			msgs := runCmd(t, cmd)
			require.Len(t, msgs, 1)
			errMsg, ok := msgs[0].(tuimsg.ErrorMsg)
			require.True(t, ok)
			tt.check(t, errMsg.Err)
		})
	}
}

func TestAffordabilityModel_Typing(t *testing.T) {
	m := NewAffordabilityModel(newEngine(t))
	m.SetField(FieldIncome, "")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("95000")})
	m, _ = m.Update(press(tea.KeyTab))
	m, _ = m.Update(press(tea.KeyEnter))

	require.NotNil(t, m.Result())
	assert.Contains(t, m.View(), "GDS")
}

func TestCitiesModel(t *testing.T) {
	engine := newEngine(t)
	m := NewCitiesModel(engine.Tables.Cities())

	first, ok := m.Selected()
	require.True(t, ok)
	for _, c := range engine.Tables.Cities() {
		assert.False(t, c.AvgHomePrice.GreaterThan(first.AvgHomePrice), "%s is pricier than %s", c.Name, first.Name)
	}

	m, _ = m.Update(press(tea.KeyDown))
	second, ok := m.Selected()
	require.True(t, ok)
	assert.NotEqual(t, first.Key, second.Key)
	assert.Contains(t, m.View(), "City Reference Data")
}
