package dto

import (
	"time"

	"github.com/gridwatch/outage-service/internal/domain"
)

// SendNotificationRequest payload.
type SendNotificationRequest struct {
	OutageID int64  `json:"outageId"`
	Message  string `json:"message"`
}

// NotificationResponse serialized notification.
type NotificationResponse struct {
	NotificationID int64     `json:"notificationId"`
	OutageID       int64     `json:"outageId"`
	Message        string    `json:"message"`
	SentTime       time.Time `json:"sentTime"`
}

// NotificationFromDomain maps a domain notification to its response form.
func NotificationFromDomain(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: notification.ID,
		OutageID:       notification.OutageID,
		Message:        notification.Message,
		SentTime:       notification.SentTime,
	}
}

// NotificationsFromDomain maps a slice of notifications.
func NotificationsFromDomain(notifications []domain.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, NotificationFromDomain(&notifications[i]))
	}
	return result
}
