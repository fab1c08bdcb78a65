package bot

// Event names used on the real-time session.
const (
	EventToggleBot    = "toggleBot"
	EventChangeMode   = "changeMode"
	EventBotState     = "botState"
	EventConnect      = "connect"
	EventDisconnect   = "disconnect"
	EventError        = "error"
	EventConnectError = "connect_error"
)

// TogglePayload requests a new enabled state.
type TogglePayload struct {
	IsEnabled bool `json:"isEnabled"`
}

// ModePayload requests a new mode.
type ModePayload struct {
	Mode Mode `json:"mode"`
}

// REST paths relative to the backend base URL.
const (
	PathState   = "/api/bot/state"
	PathEnable  = "/api/bot/enable"
	PathDisable = "/api/bot/disable"
	PathToggle  = "/api/bot/toggle"
)

// DefaultEndpoint is the hosted backend used when nothing is configured.
const DefaultEndpoint = "https://eatbotbackbot.onrender.com"

// APIResponse is the envelope returned by every REST endpoint.
type APIResponse[T any] struct {
	Success bool   `json:"success,omitempty"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
