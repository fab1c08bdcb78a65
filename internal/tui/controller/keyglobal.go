package controller

import (
	"strings"

	"botpanel/internal/bot"
	"botpanel/internal/color"
	"botpanel/internal/tui/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// handleKeyMsgGlobal processes key presses for every mode.
func handleKeyMsgGlobal(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if m.CurrentAppMode == model.ModeQuitting {
		return m, nil
	}
	if key.Matches(keyMsg, m.Keys.Quit) {
		return m, quit(m)
	}

	// --- Overlay-specific key handling --------------------------------------
	if m.CurrentAppMode == model.ModeLogOverlay {
		switch {
		case key.Matches(keyMsg, m.Keys.ToggleLog), key.Matches(keyMsg, m.Keys.Esc):
			m.CurrentAppMode = model.ModePanel
			return m, nil
		case key.Matches(keyMsg, m.Keys.CopyLogs):
			if err := clipboardWrite(strings.Join(m.ActivityLog, "\n")); err != nil {
				LogError(err, "failed to copy logs")
				return m, m.SetStatusMessage("Copy logs failed", model.StatusBarError, statusMessageTTL)
			}
			return m, m.SetStatusMessage("Logs copied to clipboard", model.StatusBarSuccess, statusMessageTTL)
		case key.Matches(keyMsg, m.Keys.Up), key.Matches(keyMsg, m.Keys.Down),
			keyMsg.String() == "pgup", keyMsg.String() == "pgdown":
			var vpCmd tea.Cmd
			m.LogViewport, vpCmd = m.LogViewport.Update(keyMsg)
			return m, vpCmd
		default:
			return m, nil
		}
	}

	if m.CurrentAppMode == model.ModeHelpOverlay && key.Matches(keyMsg, m.Keys.Esc) {
		m.CurrentAppMode = model.ModePanel
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Help):
		if m.CurrentAppMode == model.ModeHelpOverlay {
			m.CurrentAppMode = model.ModePanel
		} else {
			m.CurrentAppMode = model.ModeHelpOverlay
		}
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleLog):
		m.CurrentAppMode = model.ModeLogOverlay
		m.ActivityLogDirty = true
		m.LogViewport.GotoBottom()
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleDark):
		color.Toggle()
		m.ColorMode = color.Describe()
		return m, m.SetStatusMessage("Theme: "+m.ColorMode, model.StatusBarInfo, statusMessageTTL)
	case key.Matches(keyMsg, m.Keys.ToggleDebug):
		m.DebugMode = !m.DebugMode
		LogInfo("debug mode set to %t", m.DebugMode)
		return m, nil
	}

	if m.CurrentAppMode != model.ModePanel {
		return m, nil
	}

	// --- Panel actions ------------------------------------------------------
	switch {
	case key.Matches(keyMsg, m.Keys.Toggle):
		LogDebug(m, "toggle requested")
		return m, model.ScheduleResetCmd(m.Panel.RequestToggle())
	case key.Matches(keyMsg, m.Keys.ModeTest):
		LogDebug(m, "mode %s requested", bot.ModeTest)
		return m, model.ScheduleResetCmd(m.Panel.RequestModeChange(bot.ModeTest))
	case key.Matches(keyMsg, m.Keys.ModeDeployment):
		LogDebug(m, "mode %s requested", bot.ModeDeployment)
		return m, model.ScheduleResetCmd(m.Panel.RequestModeChange(bot.ModeDeployment))
	}
	return m, nil
}
