// Package color selects the light or dark palette the terminal UI renders with.
//
// Styles in internal/tui/design use lipgloss.AdaptiveColor, so switching the
// background flag here switches every style at once. NO_COLOR and the
// terminal's color profile are honored by lipgloss itself.
//
// # Usage Example
//
//	dark, err := color.ResolveTheme(cfg.Panel.Theme)
//	if err != nil {
//	    return err
//	}
//	color.Initialize(dark)
package color
