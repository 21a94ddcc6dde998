package changes

// Notification is a message attached to a cell. ID is the only part that
// participates in change detection.
type Notification struct {
	ID      string `json:"uniqueId" yaml:"uniqueId"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Details any    `json:"details,omitempty" yaml:"details,omitempty"`
}

// Snapshot is the derived display state of a cell at one point in time.
// Value, Formatting, CustomControls, and Parameters hold host-supplied
// structured data whose shape varies by control.
type Snapshot struct {
	Value          any            `json:"value,omitempty" yaml:"value,omitempty"`
	Notifications  []Notification `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Formatting     any            `json:"customFormatting,omitempty" yaml:"customFormatting,omitempty"`
	CustomControls []any          `json:"customControls,omitempty" yaml:"customControls,omitempty"`
	Loading        bool           `json:"loading,omitempty" yaml:"loading,omitempty"`
	HasError       bool           `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorMessage   string         `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	Editable       bool           `json:"editable,omitempty" yaml:"editable,omitempty"`
	Height         float64        `json:"height,omitempty" yaml:"height,omitempty"`
	Parameters     any            `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// NotificationIDs returns the notification identifiers in order.
func (s *Snapshot) NotificationIDs() []string {
	if s == nil || len(s.Notifications) == 0 {
		return nil
	}
	ids := make([]string, len(s.Notifications))
	for i, n := range s.Notifications {
		ids[i] = n.ID
	}
	return ids
}
