package config

import "time"

// Config is the top-level botpanel configuration.
type Config struct {
	Endpoint  EndpointConfig  `yaml:"endpoint"`
	Reconnect ReconnectConfig `yaml:"reconnect"`
	Panel     PanelConfig     `yaml:"panel"`
	DevServer DevServerConfig `yaml:"devServer"`
	Update    UpdateConfig    `yaml:"update"`
}

// EndpointConfig locates the bot backend.
type EndpointConfig struct {
	// SocketURL is the base URL of the real-time endpoint.
	SocketURL string `yaml:"socketURL"`
	// BaseURL is the base URL of the REST surface.
	BaseURL    string `yaml:"baseURL"`
	SocketPath string `yaml:"socketPath,omitempty"`
	Namespace  string `yaml:"namespace,omitempty"`
}

// ReconnectConfig is the reconnection policy of the session.
type ReconnectConfig struct {
	Enabled             bool          `yaml:"enabled"`
	InitialDelay        time.Duration `yaml:"initialDelay"`
	MaxDelay            time.Duration `yaml:"maxDelay"`
	MaxAttempts         int           `yaml:"maxAttempts"`
	RandomizationFactor float64       `yaml:"randomizationFactor"`
}

// Transport names accepted by PanelConfig.Transport.
const (
	TransportWebsocket = "websocket"
	TransportREST      = "rest"
)

// PanelConfig tunes the panel itself.
type PanelConfig struct {
	Transport         string        `yaml:"transport"`
	LoadingResetDelay time.Duration `yaml:"loadingResetDelay"`
	// PollInterval applies to the rest transport only.
	PollInterval time.Duration `yaml:"pollInterval"`
	// Theme is "auto", "dark" or "light".
	Theme string `yaml:"theme"`
}

// DevServerConfig configures `botpanel dev-server`.
type DevServerConfig struct {
	Listen         string        `yaml:"listen"`
	PingInterval   time.Duration `yaml:"pingInterval"`
	PingTimeout    time.Duration `yaml:"pingTimeout"`
	InitialMode    string        `yaml:"initialMode"`
	InitialEnabled bool          `yaml:"initialEnabled"`
}

// UpdateConfig configures `botpanel self-update`.
type UpdateConfig struct {
	// Repository is the GitHub "owner/name" releases are fetched from. It has
	// no default; self-update refuses to run without it.
	Repository string `yaml:"repository"`
}
