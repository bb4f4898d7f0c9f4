package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gridwatch/outage-service/internal/config"
	"github.com/gridwatch/outage-service/internal/events"
	"github.com/gridwatch/outage-service/internal/service"
)

func TestAlertForwardsEventsToWebhook(t *testing.T) {
	var received []events.Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event events.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received = append(received, event)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher := events.NewInMemoryDispatcher()
	alerts := service.NewAlertService(dispatcher, zap.NewNop(), config.NotifyConfig{WebhookURL: server.URL}, nil)
	alerts.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:       "evt-1",
		Type:     events.EventOutageReported,
		OutageID: 7,
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	require.Equal(t, events.EventOutageReported, received[0].Type)
	require.EqualValues(t, 7, received[0].OutageID)
}

func TestAlertBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	dispatcher := events.NewInMemoryDispatcher()
	alerts := service.NewAlertService(dispatcher, zap.NewNop(), config.NotifyConfig{WebhookURL: server.URL}, nil)
	alerts.RegisterHandlers()

	for i := 0; i < 5; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			Type:     events.EventOutageStatusChanged,
			OutageID: 1,
		}))
	}

	// the breaker trips after three consecutive failures, so the last two
	// publishes never reach the sink
	require.EqualValues(t, 3, hits.Load())
}

func TestAlertSkipsWebhookWhenUnconfigured(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	alerts := service.NewAlertService(dispatcher, zap.NewNop(), config.NotifyConfig{}, nil)
	alerts.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventNotificationSent,
	}))
}
