package view

import (
	"fmt"
	"strings"

	"botpanel/internal/panel"
	"botpanel/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// RenderPanel draws the control card for one presentation. It depends on
// nothing but its arguments, so identical presentations render identically.
func RenderPanel(pr panel.Presentation, width int) string {
	cardWidth := design.CardWidth
	if width > 0 && width < cardWidth+2 {
		cardWidth = max(width-2, design.MinPanelWidth)
	}

	rows := []string{
		design.TitleStyle.Render(IconText(IconRobot, "Bot Control Panel")),
		renderConnection(pr),
		"",
		renderField("Bot Status", renderStatus(pr)),
		renderField("Current Mode", design.TextStyle.Render(pr.Mode.Label())),
		"",
		renderToggle(pr),
	}
	if pr.Toggle.Hint != "" {
		rows = append(rows, design.HintStyle.Render(pr.Toggle.Hint))
	}
	rows = append(rows, "", design.TextSecondaryStyle.Render("Mode"), renderModeButtons(pr))
	if pr.Error != "" {
		rows = append(rows, "", design.ErrorBannerStyle.Render(IconText(IconWarning, pr.Error)))
	}

	card := design.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if width <= 0 {
		return card
	}
	return design.CenterHorizontal(width, card)
}

func renderConnection(pr panel.Presentation) string {
	style := design.TextErrorStyle
	if pr.Connected {
		style = design.TextSuccessStyle
	}
	return style.Render(IconText(IconDot, pr.Connection))
}

func renderStatus(pr panel.Presentation) string {
	if pr.Enabled {
		return design.TextSuccessStyle.Render(pr.Status)
	}
	return design.TextSecondaryStyle.Render(pr.Status)
}

func renderField(label, value string) string {
	return fmt.Sprintf("%s %s", design.TextSecondaryStyle.Render(label+":"), value)
}

func renderToggle(pr panel.Presentation) string {
	style := design.ButtonStyle
	switch {
	case pr.Toggle.Disabled:
		style = design.ButtonDisabledStyle
	case pr.Enabled:
		style = design.ButtonDangerStyle
	}
	return style.Render(pr.Toggle.Label)
}

func renderModeButtons(pr panel.Presentation) string {
	buttons := make([]string, 0, len(pr.Modes)*2)
	for i, mb := range pr.Modes {
		style := design.ButtonSecondaryStyle
		switch {
		case mb.Disabled:
			style = design.ButtonDisabledStyle
		case mb.Active:
			style = design.ButtonActiveStyle
		}
		label := mb.Label
		if mb.Active && !mb.Disabled {
			label = IconText(IconCheck, label)
		}
		if i > 0 {
			buttons = append(buttons, strings.Repeat(" ", design.SpaceXS))
		}
		buttons = append(buttons, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
