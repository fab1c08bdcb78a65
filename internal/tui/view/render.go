package view

import (
	"fmt"
	"strings"

	"botpanel/internal/tui/design"
	"botpanel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

var overlayBackdrop = lipgloss.WithWhitespaceBackground(design.ColorOverlay)

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return design.TextSecondaryStyle.Render(m.QuittingMessage)
	case model.ModeInitializing:
		if m.Width == 0 || m.Height == 0 {
			return design.TextSecondaryStyle.Render("Initializing... (waiting for window size)")
		}
		return design.TextSecondaryStyle.Render("Initializing...")
	case model.ModePanel:
		return renderMain(m)
	case model.ModeHelpOverlay:
		container := design.CenteredOverlayContainerStyle.Render(renderHelp(m))
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, container, overlayBackdrop)
	case model.ModeLogOverlay:
		overlayWidth := int(float64(m.Width) * 0.8)
		overlayHeight := int(float64(m.Height) * 0.7)
		titleHeight := lipgloss.Height(design.LogPanelTitleStyle.Render(" "))

		vpWidth := max(overlayWidth-design.LogOverlayStyle.GetHorizontalFrameSize(), 0)
		vpHeight := max(overlayHeight-design.LogOverlayStyle.GetVerticalFrameSize()-titleHeight, 0)
		resized := m.LogViewport.Width != vpWidth || m.LogViewport.Height != vpHeight
		m.LogViewport.Width = vpWidth
		m.LogViewport.Height = vpHeight
		if m.ActivityLogDirty || resized {
			m.LogViewport.SetContent(PrepareLogContent(m.ActivityLog))
			m.ActivityLogDirty = false
		}

		overlay := renderLogOverlay(m, overlayWidth, overlayHeight)
		canvas := lipgloss.Place(m.Width, m.Height-1, lipgloss.Center, lipgloss.Center, overlay, overlayBackdrop)
		return lipgloss.JoinVertical(lipgloss.Left, canvas, renderStatusBar(m, m.Width))
	default:
		return design.TextSecondaryStyle.Render(fmt.Sprintf("Unhandled application mode: %s", m.CurrentAppMode.String()))
	}
}

func renderMain(m *model.Model) string {
	contentWidth := m.Width - design.AppStyle.GetHorizontalFrameSize()
	statusBar := renderStatusBar(m, m.Width)
	card := RenderPanel(m.Presentation(), contentWidth)
	shortHelp := design.HintStyle.Render(m.Help.ShortHelpView(m.Keys.ShortHelp()))

	body := lipgloss.JoinVertical(lipgloss.Center, card, "", shortHelp)
	bodyHeight := m.Height - lipgloss.Height(statusBar)
	if bodyHeight > lipgloss.Height(body) {
		body = lipgloss.Place(contentWidth, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, design.AppStyle.Render(body), statusBar)
}

// renderHelp lays the full key map out in aligned columns.
func renderHelp(m *model.Model) string {
	columns := m.Keys.FullHelp()
	const descColumnWidth = 20
	const gap = "   "

	keyWidths := make([]int, len(columns))
	rows := 0
	for c, column := range columns {
		for _, b := range column {
			keyWidths[c] = max(keyWidths[c], lipgloss.Width(b.Help().Key))
		}
		rows = max(rows, len(column))
	}

	lines := []string{design.HelpTitleStyle.Render("KEYBOARD SHORTCUTS")}
	for r := 0; r < rows; r++ {
		var line strings.Builder
		for c, column := range columns {
			last := c == len(columns)-1
			if r >= len(column) {
				if !last {
					line.WriteString(strings.Repeat(" ", keyWidths[c]+2+descColumnWidth+len(gap)))
				}
				continue
			}
			h := column[r].Help()
			line.WriteString(h.Key)
			line.WriteString(strings.Repeat(" ", keyWidths[c]-lipgloss.Width(h.Key)+2))
			line.WriteString(h.Desc)
			if !last {
				line.WriteString(strings.Repeat(" ", max(descColumnWidth-lipgloss.Width(h.Desc), 0)))
				line.WriteString(gap)
			}
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}
