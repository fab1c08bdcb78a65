// Package config provides configuration management for botpanel.
//
// Configuration is layered. Each layer is decoded on top of the previous one,
// so a file only needs to contain the keys it changes:
//
//  1. Default configuration (built into the binary)
//  2. User configuration (~/.config/botpanel/config.yaml)
//  3. Project configuration (./.botpanel/config.yaml)
//  4. An explicit file passed with --config
//
// Command-line flags are applied by the commands after loading.
//
// # Configuration Structure
//
//	endpoint:
//	  socketURL: "https://eatbotbackbot.onrender.com"
//	  baseURL: "https://eatbotbackbot.onrender.com"
//	  socketPath: "/socket.io/"
//
//	reconnect:
//	  enabled: true
//	  initialDelay: 1s
//	  maxDelay: 5s
//	  maxAttempts: 5
//	  randomizationFactor: 0.5
//
//	panel:
//	  transport: websocket   # or "rest"
//	  loadingResetDelay: 500ms
//	  pollInterval: 2s
//
//	devServer:
//	  listen: "127.0.0.1:8080"
//	  pingInterval: 25s
//	  pingTimeout: 20s
//	  initialMode: deployment
//	  initialEnabled: false
//
//	update:
//	  repository: "your-org/botpanel"  # required by self-update, no default
//
// Durations use Go syntax ("500ms", "2s"). Unknown keys are rejected.
package config
