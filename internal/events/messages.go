package events

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
)

const (
	ActionRecorded = "recorded"
	ActionDeleted  = "deleted"
)

// RecordEvent is the message published after an expense is added or removed.
// It carries the full tuple since records have no separate identity.
type RecordEvent struct {
	Action      string    `json:"action"`
	Month       string    `json:"month"`
	Year        string    `json:"year"`
	Day         string    `json:"day"`
	Category    string    `json:"category"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewRecordEvent(action string, r core.Record) *RecordEvent {
	return &RecordEvent{
		Action:      action,
		Month:       r.Month,
		Year:        r.Year,
		Day:         r.Day,
		Category:    r.Category,
		Value:       r.Value,
		Description: r.Description,
		Timestamp:   time.Now(),
	}
}

func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var e RecordEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
