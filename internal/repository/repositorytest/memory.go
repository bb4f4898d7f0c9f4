// Package repositorytest provides in-memory repository implementations for
// tests. They mirror the Postgres repositories' contract, including
// pgx.ErrNoRows on missing rows, but keep everything in process memory.
package repositorytest

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/repository"
)

// UserRepo is a map-backed repository.UserRepository.
type UserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

// NewUserRepo returns an empty user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

// Put replaces a stored user in place, keeping its id. Tests use it to
// adjust fields the repository contract has no setter for, such as role.
func (r *UserRepo) Put(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// AreaRepo is a map-backed repository.AreaRepository.
type AreaRepo struct {
	mu     sync.Mutex
	nextID int64
	areas  map[int64]domain.Area
}

// NewAreaRepo returns an empty area repository.
func NewAreaRepo() *AreaRepo {
	return &AreaRepo{areas: make(map[int64]domain.Area)}
}

func (r *AreaRepo) Create(_ context.Context, area *domain.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	area.ID = r.nextID
	r.areas[area.ID] = *area
	return nil
}

func (r *AreaRepo) Update(_ context.Context, area *domain.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[area.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.areas[area.ID] = *area
	return nil
}

func (r *AreaRepo) GetByID(_ context.Context, id int64) (*domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	area, ok := r.areas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &area, nil
}

// List returns areas in insertion order to match ORDER BY id.
func (r *AreaRepo) List(_ context.Context) ([]domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Area, 0, len(r.areas))
	for id := int64(1); id <= r.nextID; id++ {
		if area, ok := r.areas[id]; ok {
			result = append(result, area)
		}
	}
	return result, nil
}

func (r *AreaRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.areas, id)
	return nil
}

func (r *AreaRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.areas)), nil
}

// OutageRepo is a map-backed repository.OutageRepository.
type OutageRepo struct {
	mu      sync.Mutex
	nextID  int64
	outages map[int64]domain.Outage
}

// NewOutageRepo returns an empty outage repository.
func NewOutageRepo() *OutageRepo {
	return &OutageRepo{outages: make(map[int64]domain.Outage)}
}

func (r *OutageRepo) Create(_ context.Context, outage *domain.Outage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	outage.ID = r.nextID
	r.outages[outage.ID] = *outage
	return nil
}

func (r *OutageRepo) Update(_ context.Context, outage *domain.Outage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.outages[outage.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.outages[outage.ID] = *outage
	return nil
}

func (r *OutageRepo) GetByID(_ context.Context, id int64) (*domain.Outage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outage, ok := r.outages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &outage, nil
}

func (r *OutageRepo) ListWithFilter(_ context.Context, filter repository.OutageFilter) ([]domain.Outage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Outage
	for id := int64(1); id <= r.nextID; id++ {
		outage, ok := r.outages[id]
		if !ok {
			continue
		}
		if filter.UserID != nil && outage.UserID != *filter.UserID {
			continue
		}
		if filter.AreaID != nil && outage.AreaID != *filter.AreaID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, outage.Status) {
			continue
		}
		result = append(result, outage)
	}
	return result, nil
}

func (r *OutageRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.outages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.outages, id)
	return nil
}

func (r *OutageRepo) ExistsByArea(_ context.Context, areaID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, outage := range r.outages {
		if outage.AreaID == areaID {
			return true, nil
		}
	}
	return false, nil
}

func (r *OutageRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.outages)), nil
}

func (r *OutageRepo) CountByStatus(_ context.Context) (map[domain.OutageStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[domain.OutageStatus]int64)
	for _, outage := range r.outages {
		result[outage.Status]++
	}
	return result, nil
}

func (r *OutageRepo) CountByPriority(_ context.Context) (map[domain.OutagePriority]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[domain.OutagePriority]int64)
	for _, outage := range r.outages {
		result[outage.Priority]++
	}
	return result, nil
}

func (r *OutageRepo) CountByArea(_ context.Context) ([]repository.AreaOutageCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byArea := make(map[int64]*repository.AreaOutageCount)
	for _, outage := range r.outages {
		entry, ok := byArea[outage.AreaID]
		if !ok {
			entry = &repository.AreaOutageCount{AreaID: outage.AreaID}
			byArea[outage.AreaID] = entry
		}
		entry.Total++
		if outage.Status != domain.OutageStatusResolved {
			entry.Active++
		}
	}
	result := make([]repository.AreaOutageCount, 0, len(byArea))
	for _, entry := range byArea {
		result = append(result, *entry)
	}
	return result, nil
}

func (r *OutageRepo) AvgResolutionHours(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	var count int64
	for _, outage := range r.outages {
		if outage.Status == domain.OutageStatusResolved && outage.RestorationTime != nil {
			total += outage.RestorationTime.Sub(outage.ReportedTime).Hours()
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

// NotificationRepo is a slice-backed repository.NotificationRepository.
type NotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications []domain.Notification
}

// NewNotificationRepo returns an empty notification repository.
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

func (r *NotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	notification.ID = r.nextID
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *NotificationRepo) ListByOutage(_ context.Context, outageID int64) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Notification
	for _, notification := range r.notifications {
		if notification.OutageID == outageID {
			result = append(result, notification)
		}
	}
	return result, nil
}

func (r *NotificationRepo) ListAll(_ context.Context) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification{}, r.notifications...), nil
}

func containsStatus(statuses []domain.OutageStatus, status domain.OutageStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
