package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/events"
	"github.com/gridwatch/outage-service/internal/repository/repositorytest"
	"github.com/gridwatch/outage-service/internal/service"
)

func TestSendNotification(t *testing.T) {
	ctx := context.Background()
	fx := newOutageFixture(t)
	notifications := repositorytest.NewNotificationRepo()
	notificationService := service.NewNotificationService(notifications, fx.outages, fx.dispatcher)

	outage, err := fx.service.Report(ctx, service.ReportInput{
		UserID: fx.userID, AreaID: fx.areaID, Location: "Main St", Description: "line down",
	})
	require.NoError(t, err)

	notification, err := notificationService.Send(ctx, outage.ID, "crews dispatched")
	require.NoError(t, err)
	require.NotZero(t, notification.ID)
	require.False(t, notification.SentTime.IsZero())

	listed, err := notificationService.ListByOutage(ctx, outage.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "crews dispatched", listed[0].Message)

	all, err := notificationService.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSendNotificationUnknownOutage(t *testing.T) {
	ctx := context.Background()
	fx := newOutageFixture(t)
	notifications := repositorytest.NewNotificationRepo()
	notificationService := service.NewNotificationService(notifications, fx.outages, fx.dispatcher)

	_, err := notificationService.Send(ctx, 999, "crews dispatched")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Outage not found")

	all, err := notificationService.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSendNotificationEmptyMessage(t *testing.T) {
	ctx := context.Background()
	fx := newOutageFixture(t)
	notifications := repositorytest.NewNotificationRepo()
	notificationService := service.NewNotificationService(notifications, fx.outages, fx.dispatcher)

	outage, err := fx.service.Report(ctx, service.ReportInput{
		UserID: fx.userID, AreaID: fx.areaID, Location: "Main St", Description: "line down",
	})
	require.NoError(t, err)

	_, err = notificationService.Send(ctx, outage.ID, "   ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "message required")
}

func TestSendNotificationPublishesEvent(t *testing.T) {
	ctx := context.Background()
	fx := newOutageFixture(t)
	notifications := repositorytest.NewNotificationRepo()
	notificationService := service.NewNotificationService(notifications, fx.outages, fx.dispatcher)

	var received []events.Event
	fx.dispatcher.Subscribe(events.EventNotificationSent, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	outage, err := fx.service.Report(ctx, service.ReportInput{
		UserID: fx.userID, AreaID: fx.areaID, Location: "Main St", Description: "line down",
	})
	require.NoError(t, err)

	notification, err := notificationService.Send(ctx, outage.ID, "crews dispatched")
	require.NoError(t, err)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.NotificationSentPayload)
	require.True(t, ok)
	require.Equal(t, notification.ID, payload.NotificationID)
}

// status updates never create notification records on their own
func TestStatusUpdateDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	fx := newOutageFixture(t)
	notifications := repositorytest.NewNotificationRepo()
	notificationService := service.NewNotificationService(notifications, fx.outages, fx.dispatcher)

	outage, err := fx.service.Report(ctx, service.ReportInput{
		UserID: fx.userID, AreaID: fx.areaID, Location: "Main St", Description: "line down",
	})
	require.NoError(t, err)

	_, err = fx.service.UpdateStatus(ctx, outage.ID, domain.OutageStatusResolved)
	require.NoError(t, err)

	all, err := notificationService.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
