package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridwatch/outage-service/internal/domain"
)

// NotificationRepository manages notification persistence. Rows are append-only.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByOutage(ctx context.Context, outageID int64) ([]domain.Notification, error)
	ListAll(ctx context.Context) ([]domain.Notification, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds the repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (outage_id, message, sent_time)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		notification.OutageID,
		notification.Message,
		notification.SentTime,
	).Scan(&notification.ID)
}

func (r *notificationRepository) ListByOutage(ctx context.Context, outageID int64) ([]domain.Notification, error) {
	const query = `
        SELECT id, outage_id, message, sent_time
        FROM notifications WHERE outage_id=$1 ORDER BY sent_time DESC`
	rows, err := r.pool.Query(ctx, query, outageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (r *notificationRepository) ListAll(ctx context.Context) ([]domain.Notification, error) {
	const query = `
        SELECT id, outage_id, message, sent_time
        FROM notifications ORDER BY sent_time DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func scanNotifications(rows pgx.Rows) ([]domain.Notification, error) {
	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.OutageID,
			&notification.Message,
			&notification.SentTime,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}
