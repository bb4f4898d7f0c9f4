package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/repository"
	apperrors "github.com/gridwatch/outage-service/pkg/util"
)

// AreaService manages the registry of service areas.
type AreaService struct {
	areas   repository.AreaRepository
	outages repository.OutageRepository
}

// AreaInput describes create/update payloads.
type AreaInput struct {
	Name       string
	Region     string
	TotalUsers int
}

// NewAreaService constructs the service.
func NewAreaService(areas repository.AreaRepository, outages repository.OutageRepository) *AreaService {
	return &AreaService{areas: areas, outages: outages}
}

// Create registers a new service area.
func (s *AreaService) Create(ctx context.Context, input AreaInput) (*domain.Area, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("area name required", nil)
	}

	area := &domain.Area{
		Name:       name,
		Region:     strings.TrimSpace(input.Region),
		TotalUsers: input.TotalUsers,
	}
	if err := s.areas.Create(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// List returns all areas.
func (s *AreaService) List(ctx context.Context) ([]domain.Area, error) {
	return s.areas.List(ctx)
}

// Get fetches an area by id.
func (s *AreaService) Get(ctx context.Context, id int64) (*domain.Area, error) {
	area, err := s.areas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("area", map[string]any{"id": id})
		}
		return nil, err
	}
	return area, nil
}

// Update replaces an area's fields by id.
func (s *AreaService) Update(ctx context.Context, id int64, input AreaInput) (*domain.Area, error) {
	area, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	area.Name = strings.TrimSpace(input.Name)
	area.Region = strings.TrimSpace(input.Region)
	area.TotalUsers = input.TotalUsers
	if err := s.areas.Update(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// Delete removes an area. Areas still referenced by outages are not
// deletable; the caller must resolve or delete those outages first.
func (s *AreaService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	referenced, err := s.outages.ExistsByArea(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewConflict("area still referenced by outages", map[string]any{"id": id})
	}

	if err := s.areas.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("area", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
