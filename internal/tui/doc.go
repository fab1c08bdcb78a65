// Package tui provides the terminal user interface for botpanel.
//
// The interface is a Bubble Tea program split into model, view and
// controller packages:
//
//   - model (internal/tui/model/): the Model, key bindings, messages and the
//     commands that listen on the session event and log channels
//   - view (internal/tui/view/): renders the panel card, status bar and the
//     help and activity log overlays
//   - controller (internal/tui/controller/): dispatches messages and key
//     presses and builds the tea.Program
//   - design (internal/tui/design/): palette and component styles
//
// # State Ownership
//
// The panel.Panel inside the model is mutated only from controller.Update,
// which Bubble Tea runs on a single goroutine. Session events arrive as
// SessionEventMsg, and the loading reset arrives as ResetLoadingMsg carrying
// the ticket returned by the request. On quit the panel is closed before the
// transport, so nothing emitted during shutdown reaches it.
//
// # Key Bindings
//
//   - t, enter, space: toggle the bot
//   - 1 / 2: switch to test / deployment mode
//   - L: activity log overlay (y copies it to the clipboard)
//   - h or ?: help overlay
//   - D: switch between dark and light styles
//   - z: show debug lines in the activity log
//   - q, ctrl+c: quit
package tui
