package view

import (
	"fmt"
	"strings"

	"botpanel/internal/tui/design"
	"botpanel/internal/tui/model"
	"botpanel/pkg/logging"

	"github.com/charmbracelet/lipgloss"
)

const logOverlayTitle = " Activity Log  (↑/↓ scroll  •  y copy  •  Esc close)"

func renderLogOverlay(m *model.Model, width, height int) string {
	title := design.LogPanelTitleStyle.Render(SafeIcon(IconScroll) + logOverlayTitle + droppedSuffix(logging.Dropped()))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return design.LogOverlayStyle.
		Width(width - design.LogOverlayStyle.GetHorizontalFrameSize()).
		Height(height - design.LogOverlayStyle.GetVerticalFrameSize()).
		Render(content)
}

// droppedSuffix reports entries lost to a full log channel.
func droppedSuffix(n uint64) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("  [%d dropped]", n)
}

// PrepareLogContent applies color styles based on log level markers.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleLogLine(l)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}
