package designs

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/internal/metadata"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	statusStyle = statusBannerStyle.Render

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224"))

	previewStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	paneStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455"))

	primaryMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#A33")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
)

var statusColors = map[metadata.Status]lipgloss.Style{
	metadata.StatusDraft:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888")),
	metadata.StatusReview:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FA0")),
	metadata.StatusApproved: lipgloss.NewStyle().Foreground(lipgloss.Color("#0A0")),
	metadata.StatusArchived: lipgloss.NewStyle().Foreground(lipgloss.Color("#555")),
	metadata.StatusExported: lipgloss.NewStyle().Foreground(lipgloss.Color("#55F")),
}

func renderStatus(s metadata.Status) string {
	if style, ok := statusColors[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}
