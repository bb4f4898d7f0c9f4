package events

import (
	"time"

	"github.com/gridwatch/outage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOutageReported      EventType = "outage_reported"
	EventOutageStatusChanged EventType = "outage_status_changed"
	EventNotificationSent    EventType = "notification_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OutageID  int64       `json:"outage_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OutageReportedPayload payload.
type OutageReportedPayload struct {
	UserID   int64                 `json:"user_id"`
	AreaID   int64                 `json:"area_id"`
	Location string                `json:"location"`
	Priority domain.OutagePriority `json:"priority"`
}

// OutageStatusChangedPayload payload.
type OutageStatusChangedPayload struct {
	OldStatus domain.OutageStatus `json:"old_status"`
	NewStatus domain.OutageStatus `json:"new_status"`
	Restored  bool                `json:"restored"`
}

// NotificationSentPayload payload.
type NotificationSentPayload struct {
	NotificationID int64  `json:"notification_id"`
	Message        string `json:"message"`
}
