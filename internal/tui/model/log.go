package model

import (
	"fmt"

	"botpanel/pkg/logging"
)

// FormatLogEntry renders an entry as one activity log line.
func FormatLogEntry(entry logging.LogEntry) string {
	line := fmt.Sprintf("%s [%s] [%s] %s",
		entry.Timestamp.Format("15:04:05.000"), entry.Level, entry.Subsystem, entry.Message)
	if entry.Err != nil {
		line += " -- Error: " + entry.Err.Error()
	}
	return line
}

// AddRawLineToActivityLog appends a line, dropping the oldest ones past
// MaxActivityLogLines.
func (m *Model) AddRawLineToActivityLog(line string) {
	m.ActivityLog = append(m.ActivityLog, line)
	if over := len(m.ActivityLog) - MaxActivityLogLines; over > 0 {
		m.ActivityLog = m.ActivityLog[over:]
	}
	m.ActivityLogDirty = true
}
