// Package tui is the interactive terminal calculator.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/tui/scenes"
)

// Model is the root bubbletea model. It owns navigation and the status line
// and delegates everything else to the current scene.
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine *calculation.Engine

	mortgage      *scenes.MortgageModel
	affordability *scenes.AffordabilityModel
	cities        *scenes.CitiesModel

	status string
	err    error
}

// NewModel builds every scene up front from engine
func NewModel(engine *calculation.Engine) Model {
	return Model{
		currentScene:  SceneMortgage,
		engine:        engine,
		mortgage:      scenes.NewMortgageModel(engine.Assumptions),
		affordability: scenes.NewAffordabilityModel(engine),
		cities:        scenes.NewCitiesModel(engine.Tables.Cities()),
		width:         80,
		height:        24,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Status returns the status line text
func (m Model) Status() string {
	return m.status
}

// Err returns the error being shown, if any
func (m Model) Err() error {
	return m.err
}
