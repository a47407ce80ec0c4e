package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/maplemetrics/maplemetrics/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneMortgage:
		content = m.mortgage.View()
	case SceneAffordability:
		content = m.affordability.View()
	case SceneCities:
		content = m.cities.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	if m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content,
			tuistyles.ErrorStyle.Render("Error: "+m.err.Error()),
			tuistyles.SubtitleStyle.Render("esc to dismiss"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("MapleMetrics 🍁 Canadian Cost of Living")
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(m.currentScene.String()))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("F1", "mortgage"),
		formatShortcut("F2", "affordability"),
		formatShortcut("F3", "cities"),
		formatShortcut("F4", "help"),
		formatShortcut("ctrl+c", "quit"),
	}
	text := strings.Join(shortcuts, " • ")

	if m.status != "" {
		gap := m.width - lipgloss.Width(text) - lipgloss.Width(m.status) - 4
		text += strings.Repeat(" ", max(1, gap)) + m.status
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(text)
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(tuistyles.SectionStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"F1 / F2 / F3", "switch calculator"},
		{"↑ ↓ / tab", "move between fields"},
		{"← →", "adjust a mortgage slider"},
		{"enter", "calculate affordability, or analyze the highlighted city"},
		{"esc", "dismiss an error or leave help"},
		{"q", "quit, outside the affordability form"},
	}
	for _, r := range rows {
		b.WriteString(lipgloss.NewStyle().Width(16).Render(tuistyles.StatusKeyStyle.Render(r[0])))
		b.WriteString(r[1])
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.SectionStyle.Render("Affordability Rules"))
	b.WriteString("\n")
	th := m.engine.Thresholds
	b.WriteString("GDS above " + th.GDS.String() + "% or TDS above " + th.TDS.String() + "% is a stretch.\n")
	b.WriteString("GDS above " + th.StretchGDS.String() + "% or TDS above " + th.StretchTDS.String() + "% is unaffordable.\n")
	b.WriteString(tuistyles.InfoStyle.Render("Figures are estimates from reference data, not financial advice."))

	return tuistyles.BorderStyle.Render(b.String())
}
