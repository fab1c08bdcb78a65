package view

import (
	"botpanel/internal/tui/design"
	"botpanel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *model.Model, width int) string {
	pr := m.Presentation()
	snap := m.Panel.Snapshot()
	busy := snap.ActionLoading || snap.ModeLoading

	var bg lipgloss.AdaptiveColor
	switch {
	case pr.Error != "":
		bg = design.StatusBarErrorBg
	case m.SessionStopped:
		bg = design.StatusBarWarningBg
	case pr.Connected:
		bg = design.StatusBarSuccessBg
	default:
		bg = design.StatusBarInfoBg
	}

	leftW := int(float64(width) * 0.25)
	rightW := int(float64(width) * 0.35)
	centerW := width - leftW - rightW
	if centerW < 0 {
		centerW = 0
	}
	base := design.StatusBarStyle.Background(bg)

	// left
	var left string
	switch {
	case busy:
		left = m.Spinner.View() + " Sending..."
	case m.SessionStopped:
		left = IconText(IconStop, "Stopped")
	case pr.Connected:
		left = IconText(IconCheck, pr.Connection)
	default:
		left = IconText(IconHourglass, pr.Connection)
	}
	leftStr := base.Width(leftW).Render(left)

	// center transient
	center := ""
	if m.StatusBarMessage != "" {
		var icon string
		switch m.StatusBarMessageType {
		case model.StatusBarSuccess:
			icon = IconSparkles
		case model.StatusBarError:
			icon = IconCross
		case model.StatusBarWarning:
			icon = IconLightbulb
		default:
			icon = IconInfo
		}
		center = IconText(icon, m.StatusBarMessage)
	}
	centerStr := base.Width(centerW).Align(lipgloss.Center).Render(center)

	// right
	right := IconText(IconLink, m.Endpoint)
	if m.DebugMode {
		right = "debug " + right
	}
	rightStr := base.Width(rightW).Align(lipgloss.Right).MaxHeight(1).Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Bottom, leftStr, centerStr, rightStr)
}
