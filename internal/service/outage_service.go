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

// OutageService coordinates the outage lifecycle.
type OutageService struct {
	outages    repository.OutageRepository
	users      repository.UserRepository
	areas      repository.AreaRepository
	dispatcher events.Dispatcher
}

// OutageDependencies bundles repositories for the outage service.
type OutageDependencies struct {
	OutageRepo repository.OutageRepository
	UserRepo   repository.UserRepository
	AreaRepo   repository.AreaRepository
	Dispatcher events.Dispatcher
}

// ReportInput describes an outage report payload.
type ReportInput struct {
	UserID        int64
	AreaID        int64
	Location      string
	Description   string
	Priority      domain.OutagePriority
	AffectedUsers int
}

// NewOutageService constructs the service.
func NewOutageService(deps OutageDependencies) *OutageService {
	return &OutageService{
		outages:    deps.OutageRepo,
		users:      deps.UserRepo,
		areas:      deps.AreaRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Report validates the referenced user and area, stamps the reported time
// and persists a new outage in REPORTED status.
func (s *OutageService) Report(ctx context.Context, input ReportInput) (*domain.Outage, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Invalid user or area", nil)
		}
		return nil, err
	}
	if _, err := s.areas.GetByID(ctx, input.AreaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Invalid user or area", nil)
		}
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.OutagePriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	outage := &domain.Outage{
		UserID:        input.UserID,
		AreaID:        input.AreaID,
		Location:      strings.TrimSpace(input.Location),
		Description:   strings.TrimSpace(input.Description),
		Status:        domain.OutageStatusReported,
		Priority:      priority,
		AffectedUsers: input.AffectedUsers,
		ReportedTime:  time.Now(),
	}
	if err := s.outages.Create(ctx, outage); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventOutageReported,
		OutageID: outage.ID,
		Payload: events.OutageReportedPayload{
			UserID:   outage.UserID,
			AreaID:   outage.AreaID,
			Location: outage.Location,
			Priority: outage.Priority,
		},
	})
	return outage, nil
}

// UpdateStatus sets the outage status. The restoration time is stamped if
// and only if the new status is RESOLVED; no transition graph is enforced,
// any status may be set from any other.
func (s *OutageService) UpdateStatus(ctx context.Context, id int64, status domain.OutageStatus) (*domain.Outage, error) {
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}

	outage, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := outage.Status
	outage.Status = status
	if status == domain.OutageStatusResolved {
		now := time.Now()
		outage.RestorationTime = &now
	}
	if err := s.outages.Update(ctx, outage); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventOutageStatusChanged,
		OutageID: outage.ID,
		Payload: events.OutageStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
			Restored:  status == domain.OutageStatusResolved,
		},
	})
	return outage, nil
}

// Get fetches an outage by id.
func (s *OutageService) Get(ctx context.Context, id int64) (*domain.Outage, error) {
	outage, err := s.outages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("outage", map[string]any{"id": id})
		}
		return nil, err
	}
	return outage, nil
}

// List returns all outages.
func (s *OutageService) List(ctx context.Context) ([]domain.Outage, error) {
	return s.outages.ListWithFilter(ctx, repository.OutageFilter{})
}

// ListByArea returns outages reported in the given area.
func (s *OutageService) ListByArea(ctx context.Context, areaID int64) ([]domain.Outage, error) {
	return s.outages.ListWithFilter(ctx, repository.OutageFilter{AreaID: &areaID})
}

// ListByStatus returns outages with the given status.
func (s *OutageService) ListByStatus(ctx context.Context, status domain.OutageStatus) ([]domain.Outage, error) {
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	return s.outages.ListWithFilter(ctx, repository.OutageFilter{Statuses: []domain.OutageStatus{status}})
}

// ListByUser returns outages reported by the given user.
func (s *OutageService) ListByUser(ctx context.Context, userID int64) ([]domain.Outage, error) {
	return s.outages.ListWithFilter(ctx, repository.OutageFilter{UserID: &userID})
}

// Delete removes an outage; its notifications are removed with it.
func (s *OutageService) Delete(ctx context.Context, id int64) error {
	if err := s.outages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("outage", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *OutageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
