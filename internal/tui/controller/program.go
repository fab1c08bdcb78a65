package controller

import (
	"botpanel/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for the panel. The transport in
// opts must already be started.
func NewProgram(opts model.Options, altScreen bool, extra ...tea.ProgramOption) *tea.Program {
	app := NewAppModel(model.InitialModel(opts))

	programOpts := append([]tea.ProgramOption(nil), extra...)
	if altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	return tea.NewProgram(app, programOpts...)
}
