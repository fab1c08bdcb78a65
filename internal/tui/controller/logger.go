package controller

import (
	"botpanel/internal/tui/model"
	"botpanel/pkg/logging"
)

const controllerSubsystem = "Controller"

// LogInfo logs an informational message.
func LogInfo(format string, a ...interface{}) {
	logging.Info(controllerSubsystem, format, a...)
}

// LogDebug logs a debug message, only while the TUI is in debug mode.
func LogDebug(m *model.Model, format string, a ...interface{}) {
	if m != nil && m.DebugMode {
		logging.Debug(controllerSubsystem, format, a...)
	}
}

// LogError logs an error message.
func LogError(err error, format string, a ...interface{}) {
	logging.Error(controllerSubsystem, err, format, a...)
}
