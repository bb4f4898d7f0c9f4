package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/gridwatch/outage-service/internal/config"
	"github.com/gridwatch/outage-service/internal/events"
)

// AlertService forwards domain events to external sinks. It is fire and
// forget: sink failures are logged and dropped, never surfaced to the
// request that produced the event.
type AlertService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
	amqp       *events.AMQPPublisher
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewAlertService creates the service. amqp may be nil when no broker is
// configured.
func NewAlertService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig, amqp *events.AMQPPublisher) *AlertService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "alert-webhook",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &AlertService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		amqp:       amqp,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		breaker:    breaker,
	}
}

// RegisterHandlers subscribes to events.
func (a *AlertService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventOutageReported, a.handleEvent)
	a.dispatcher.Subscribe(events.EventOutageStatusChanged, a.handleEvent)
	a.dispatcher.Subscribe(events.EventNotificationSent, a.handleEvent)
}

func (a *AlertService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("outage event",
		zap.String("event_type", string(event.Type)),
		zap.Int64("outage_id", event.OutageID))

	a.forwardWebhook(ctx, event)
	a.forwardAMQP(ctx, event)
	return nil
}

func (a *AlertService) forwardWebhook(ctx context.Context, event events.Event) {
	if a.cfg.WebhookURL == "" {
		return
	}

	_, err := a.breaker.Execute(func() (interface{}, error) {
		body, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := a.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		a.logger.Warn("webhook alert failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func (a *AlertService) forwardAMQP(ctx context.Context, event events.Event) {
	if a.amqp == nil {
		return
	}
	if err := a.amqp.Publish(ctx, event); err != nil {
		a.logger.Warn("amqp alert failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
