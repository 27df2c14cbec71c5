package model

import "time"

// RefreshRequest asks the consumer to re-ingest a set of countries.
type RefreshRequest struct {
	Countries   []string  `json:"countries"`
	Priority    string    `json:"priority"` // "high", "normal", "low"
	RequestID   string    `json:"requestId"`
	RequestedAt time.Time `json:"requestedAt"`
}

// RefreshResultMessage reports a finished refresh back on the result subject.
type RefreshResultMessage struct {
	RequestID string         `json:"requestId"`
	Result    *RefreshResult `json:"result"`
	Error     string         `json:"error,omitempty"`
}
