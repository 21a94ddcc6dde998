package changes

import "github.com/google/uuid"

// Notification levels understood by the grid.
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// NewNotification builds a notification with a freshly generated identifier.
func NewNotification(level, message string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
	}
}
