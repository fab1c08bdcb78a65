package config

import (
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/panel"
	"botpanel/internal/socketio"
)

// GetDefaultConfig returns the built-in configuration every layer starts from.
func GetDefaultConfig() Config {
	return Config{
		Endpoint: EndpointConfig{
			SocketURL:  bot.DefaultEndpoint,
			BaseURL:    bot.DefaultEndpoint,
			SocketPath: socketio.DefaultPath,
			Namespace:  socketio.DefaultNamespace,
		},
		Reconnect: ReconnectConfig{
			Enabled:             true,
			InitialDelay:        time.Second,
			MaxDelay:            5 * time.Second,
			MaxAttempts:         5,
			RandomizationFactor: 0.5,
		},
		Panel: PanelConfig{
			Transport:         TransportWebsocket,
			LoadingResetDelay: panel.DefaultLoadingResetDelay,
			PollInterval:      2 * time.Second,
			Theme:             "auto",
		},
		DevServer: DevServerConfig{
			Listen:       "127.0.0.1:8080",
			PingInterval: 25 * time.Second,
			PingTimeout:  20 * time.Second,
			InitialMode:  string(bot.ModeDeployment),
		},
	}
}
