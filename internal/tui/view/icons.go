package view

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Icon constants
const (
	IconCheck     = "✔" // U+2714
	IconCross     = "❌" // U+274C
	IconWarning   = "⚠" // U+26A0 without VS16
	IconHourglass = "⏳" // U+23F3
	IconSparkles  = "✨" // U+2728
	IconLightbulb = "💡" // U+1F4A1
	IconLink      = "🔗" // U+1F517
	IconRobot     = "🤖" // U+1F916
	IconPlay      = "▶" // U+25B6 without VS16
	IconStop      = "⏹" // U+23F9 without VS16
	IconGear      = "⚙" // U+2699 without VS16
	IconScroll    = "📜" // U+1F4DC
	IconInfo      = "ℹ" // U+2139 without VS16
	IconDot       = "●" // U+25CF
)

// SafeIcon wraps an icon with proper spacing to prevent rendering issues.
// Single-cell icons get one trailing space, wide icons get two so that at
// least one space stays visible after the icon.
func SafeIcon(icon string) string {
	spaces := 1
	if runewidth.StringWidth(icon) >= 2 {
		spaces = 2
	}
	return fmt.Sprintf("%s%s", icon, strings.Repeat(" ", spaces))
}

// IconText formats an icon with text, handling spacing properly
func IconText(icon string, text string) string {
	return SafeIcon(icon) + text
}
