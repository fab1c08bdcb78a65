package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Spacing units, in terminal cells.
const (
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2
	SpaceMD   = 3
	SpaceLG   = 4

	// Component dimensions
	CardWidth     = 44
	ButtonWidth   = 18
	MinPanelWidth = 30
)

// Color Palette - Semantic colors with consistent light/dark mode support
var (
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#5A56E0",
		Dark:  "#7571F9",
	}

	// State Colors
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2563EB",
		Dark:  "#3B82F6",
	}

	// Neutral Colors
	ColorSurface = lipgloss.AdaptiveColor{
		Light: "#F9FAFB",
		Dark:  "#1A1A1A",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#E5E7EB",
		Dark:  "#404040",
	}
	ColorText = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F9FAFB",
	}
	ColorTextSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorTextMuted = lipgloss.AdaptiveColor{
		Light: "#9CA3AF",
		Dark:  "#6B7280",
	}
	ColorOnAccent = lipgloss.AdaptiveColor{
		Light: "#FFFFFF",
		Dark:  "#FFFFFF",
	}
	ColorOverlay = lipgloss.AdaptiveColor{
		Light: "#F3F4F6",
		Dark:  "#111111",
	}
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	TextStyle          = lipgloss.NewStyle().Foreground(ColorText)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	TextSuccessStyle   = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	TextErrorStyle     = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	TextWarningStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	HintStyle          = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
)

// Container styles
var (
	AppStyle = lipgloss.NewStyle().
			Padding(SpaceNone, SpaceXS)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(SpaceNone, SpaceSM).
			Width(CardWidth)

	ErrorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(ColorError).
				Foreground(ColorError).
				PaddingLeft(SpaceXS)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorOnAccent).
			Background(ColorPrimary).
			Padding(SpaceNone, SpaceSM).
			Width(ButtonWidth).
			Align(lipgloss.Center)

	ButtonDangerStyle = ButtonStyle.
				Background(ColorError)

	ButtonActiveStyle = ButtonStyle.
				Background(ColorSuccess).
				Bold(true)

	ButtonSecondaryStyle = ButtonStyle.
				Foreground(ColorText).
				Background(ColorSurface)

	ButtonDisabledStyle = ButtonStyle.
				Foreground(ColorTextMuted).
				Background(ColorSurface).
				Faint(true)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorOnAccent).
			Padding(SpaceNone, SpaceXS)

	StatusBarSuccessBg = ColorSuccess
	StatusBarErrorBg   = ColorError
	StatusBarWarningBg = ColorWarning
	StatusBarInfoBg    = ColorInfo
)

// Overlay and log styles
var (
	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			MarginBottom(SpaceXS)

	CenteredOverlayContainerStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(ColorPrimary).
					Padding(SpaceXS, SpaceSM)

	LogOverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(SpaceNone, SpaceXS)

	LogPanelTitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	LogInfoStyle  = lipgloss.NewStyle().Foreground(ColorText)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	LogErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	LogDebugStyle = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
)

// CenterHorizontal centers content within width.
func CenterHorizontal(width int, content string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
