package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridwatch/outage-service/internal/domain"
)

// OutageFilter captures listing parameters.
type OutageFilter struct {
	UserID   *int64
	AreaID   *int64
	Statuses []domain.OutageStatus
	Limit    int
	Offset   int
}

// AreaOutageCount aggregates outage totals per area for reporting.
type AreaOutageCount struct {
	AreaID int64
	Total  int64
	Active int64
}

// OutageRepository encapsulates outage persistence.
type OutageRepository interface {
	Create(ctx context.Context, outage *domain.Outage) error
	Update(ctx context.Context, outage *domain.Outage) error
	GetByID(ctx context.Context, id int64) (*domain.Outage, error)
	ListWithFilter(ctx context.Context, filter OutageFilter) ([]domain.Outage, error)
	Delete(ctx context.Context, id int64) error
	ExistsByArea(ctx context.Context, areaID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.OutageStatus]int64, error)
	CountByPriority(ctx context.Context) (map[domain.OutagePriority]int64, error)
	CountByArea(ctx context.Context) ([]AreaOutageCount, error)
	AvgResolutionHours(ctx context.Context) (float64, error)
}

type outageRepository struct {
	pool *pgxpool.Pool
}

// NewOutageRepository instantiates repository.
func NewOutageRepository(pool *pgxpool.Pool) OutageRepository {
	return &outageRepository{pool: pool}
}

func (r *outageRepository) Create(ctx context.Context, outage *domain.Outage) error {
	const query = `
        INSERT INTO outages (user_id, area_id, location, description, status, priority, affected_users, reported_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		outage.UserID,
		outage.AreaID,
		outage.Location,
		outage.Description,
		outage.Status,
		outage.Priority,
		outage.AffectedUsers,
		outage.ReportedTime,
	).Scan(&outage.ID)
}

func (r *outageRepository) Update(ctx context.Context, outage *domain.Outage) error {
	const query = `
        UPDATE outages SET location=$1, description=$2, status=$3, priority=$4,
            affected_users=$5, restoration_time=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		outage.Location,
		outage.Description,
		outage.Status,
		outage.Priority,
		outage.AffectedUsers,
		outage.RestorationTime,
		outage.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *outageRepository) GetByID(ctx context.Context, id int64) (*domain.Outage, error) {
	const query = `
        SELECT id, user_id, area_id, location, description, status, priority,
               affected_users, reported_time, restoration_time
        FROM outages WHERE id=$1`
	var outage domain.Outage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&outage.ID,
		&outage.UserID,
		&outage.AreaID,
		&outage.Location,
		&outage.Description,
		&outage.Status,
		&outage.Priority,
		&outage.AffectedUsers,
		&outage.ReportedTime,
		&outage.RestorationTime,
	); err != nil {
		return nil, err
	}
	return &outage, nil
}

func (r *outageRepository) ListWithFilter(ctx context.Context, filter OutageFilter) ([]domain.Outage, error) {
	base := `SELECT id, user_id, area_id, location, description, status, priority,
                    affected_users, reported_time, restoration_time
             FROM outages`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.AreaID != nil {
		args = append(args, *filter.AreaID)
		clauses = append(clauses, fmt.Sprintf("area_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY reported_time DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}
	if filter.Offset > 0 {
		query = fmt.Sprintf("%s OFFSET %d", query, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOutages(rows)
}

func (r *outageRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM outages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *outageRepository) ExistsByArea(ctx context.Context, areaID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM outages WHERE area_id=$1)`, areaID).Scan(&exists)
	return exists, err
}

func (r *outageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM outages`).Scan(&count)
	return count, err
}

func (r *outageRepository) CountByStatus(ctx context.Context) (map[domain.OutageStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM outages GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.OutageStatus]int64)
	for rows.Next() {
		var status domain.OutageStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *outageRepository) CountByPriority(ctx context.Context) (map[domain.OutagePriority]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT priority, COUNT(*) FROM outages GROUP BY priority`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.OutagePriority]int64)
	for rows.Next() {
		var priority domain.OutagePriority
		var count int64
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		result[priority] = count
	}
	return result, rows.Err()
}

func (r *outageRepository) CountByArea(ctx context.Context) ([]AreaOutageCount, error) {
	const query = `
        SELECT area_id,
               COUNT(*),
               COUNT(*) FILTER (WHERE status IN ('REPORTED','IN_PROGRESS'))
        FROM outages GROUP BY area_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AreaOutageCount
	for rows.Next() {
		var entry AreaOutageCount
		if err := rows.Scan(&entry.AreaID, &entry.Total, &entry.Active); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *outageRepository) AvgResolutionHours(ctx context.Context) (float64, error) {
	const query = `
        SELECT COALESCE(AVG(EXTRACT(EPOCH FROM restoration_time - reported_time) / 3600), 0)
        FROM outages
        WHERE status='RESOLVED' AND restoration_time IS NOT NULL`
	var avg float64
	err := r.pool.QueryRow(ctx, query).Scan(&avg)
	return avg, err
}

func scanOutages(rows pgx.Rows) ([]domain.Outage, error) {
	var result []domain.Outage
	for rows.Next() {
		var outage domain.Outage
		if err := rows.Scan(
			&outage.ID,
			&outage.UserID,
			&outage.AreaID,
			&outage.Location,
			&outage.Description,
			&outage.Status,
			&outage.Priority,
			&outage.AffectedUsers,
			&outage.ReportedTime,
			&outage.RestorationTime,
		); err != nil {
			return nil, err
		}
		result = append(result, outage)
	}
	return result, rows.Err()
}
