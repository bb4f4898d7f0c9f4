package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/events"
	"github.com/gridwatch/outage-service/internal/repository"
	apperrors "github.com/gridwatch/outage-service/pkg/util"
)

// NotificationService records notifications against outages. Dispatch is
// caller-initiated only; the outage lifecycle never notifies on its own.
type NotificationService struct {
	notifications repository.NotificationRepository
	outages       repository.OutageRepository
	dispatcher    events.Dispatcher
}

// NewNotificationService constructs the service.
func NewNotificationService(notifications repository.NotificationRepository, outages repository.OutageRepository, dispatcher events.Dispatcher) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		outages:       outages,
		dispatcher:    dispatcher,
	}
}

// Send validates the outage exists, stamps the sent time and persists the
// notification.
func (s *NotificationService) Send(ctx context.Context, outageID int64, message string) (*domain.Notification, error) {
	if _, err := s.outages.GetByID(ctx, outageID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Outage not found", nil)
		}
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	notification := &domain.Notification{
		OutageID: outageID,
		Message:  message,
		SentTime: time.Now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNotificationSent,
			OutageID:  outageID,
			Timestamp: time.Now(),
			Payload: events.NotificationSentPayload{
				NotificationID: notification.ID,
				Message:        notification.Message,
			},
		})
	}
	return notification, nil
}

// ListByOutage returns notifications recorded for the given outage.
func (s *NotificationService) ListByOutage(ctx context.Context, outageID int64) ([]domain.Notification, error) {
	return s.notifications.ListByOutage(ctx, outageID)
}

// ListAll returns every recorded notification.
func (s *NotificationService) ListAll(ctx context.Context) ([]domain.Notification, error) {
	return s.notifications.ListAll(ctx)
}
