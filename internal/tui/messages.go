package tui

// Scene is one screen of the TUI
type Scene int

const (
	SceneMortgage Scene = iota
	SceneAffordability
	SceneCities
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneMortgage:
		return "Mortgage"
	case SceneAffordability:
		return "Affordability"
	case SceneCities:
		return "Cities"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}
