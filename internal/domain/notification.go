package domain

import "time"

// Notification records a message sent for an outage. Rows are append-only.
type Notification struct {
	ID       int64
	OutageID int64
	Message  string
	SentTime time.Time
}
