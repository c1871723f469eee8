package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	todayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("45"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("212"))
)

// chipStyle colors a chip by its category.
func chipStyle(c views.TaskChip) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Category.Color)).
		BorderForeground(lipgloss.Color(c.Category.Border))
}

// statusDot renders a colored bullet for status.
func statusDot(status models.TaskStatus) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(models.StatusColor(status))).Render("●")
}
