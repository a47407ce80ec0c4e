package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maplemetrics/maplemetrics/internal/tui/scenes"
	"github.com/maplemetrics/maplemetrics/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mortgage.SetSize(msg.Width, msg.Height)
		m.affordability.SetSize(msg.Width, msg.Height)
		m.cities.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.StatusMsg:
		m.status = msg.Text
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ClearErrorMsg:
		m.err = nil
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// handleKeyPress processes global shortcuts before the scene sees the key.
// Letter shortcuts are not global because the affordability form takes text.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.currentScene != SceneAffordability {
			return m, tea.Quit
		}
	case "f1":
		return m, navigate(SceneMortgage)
	case "f2":
		return m, navigate(SceneAffordability)
	case "f3":
		return m, navigate(SceneCities)
	case "f4", "?":
		if msg.String() == "f4" || m.currentScene != SceneAffordability {
			return m, navigate(SceneHelp)
		}
	case "esc":
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
	case "enter":
		if m.currentScene == SceneCities {
			if city, ok := m.cities.Selected(); ok {
				m.affordability.SetField(scenes.FieldCity, city.Name)
				m.previousScene = m.currentScene
				m.currentScene = SceneAffordability
				return m.updateCurrentScene(msg)
			}
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates to the visible scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneMortgage:
		m.mortgage, cmd = m.mortgage.Update(msg)
	case SceneAffordability:
		m.affordability, cmd = m.affordability.Update(msg)
	case SceneCities:
		m.cities, cmd = m.cities.Update(msg)
	}
	return m, cmd
}
