package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/persistence"
	"github.com/gridwatch/outage-service/internal/repository"
)

const statsCacheKey = "report:stats"

// Stats is the dashboard aggregate view.
type Stats struct {
	TotalOutages       int64                           `json:"total_outages"`
	ActiveOutages      int64                           `json:"active_outages"`
	ResolvedOutages    int64                           `json:"resolved_outages"`
	TotalAreas         int64                           `json:"total_areas"`
	TotalUsers         int64                           `json:"total_users"`
	AvgResolutionHours float64                         `json:"avg_resolution_hours"`
	OutagesByStatus    map[domain.OutageStatus]int64   `json:"outages_by_status"`
	OutagesByPriority  map[domain.OutagePriority]int64 `json:"outages_by_priority"`
}

// AreaStats is the per-area aggregate view.
type AreaStats struct {
	AreaID        int64  `json:"area_id"`
	Name          string `json:"name"`
	Region        string `json:"region"`
	TotalUsers    int    `json:"total_users"`
	TotalOutages  int64  `json:"total_outages"`
	ActiveOutages int64  `json:"active_outages"`
}

// ReportService serves read-only aggregates for dashboards. Aggregates are
// recomputed per call; the stats view is additionally cached in Redis for a
// short TTL since every dashboard load requests it.
type ReportService struct {
	outages repository.OutageRepository
	areas   repository.AreaRepository
	users   repository.UserRepository
	cache   *persistence.Redis
	ttl     time.Duration
	logger  *zap.Logger
}

// NewReportService constructs the service. cache may be nil.
func NewReportService(outages repository.OutageRepository, areas repository.AreaRepository, users repository.UserRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{
		outages: outages,
		areas:   areas,
		users:   users,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Stats returns system-wide dashboard counts.
func (s *ReportService) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	byStatus, err := s.outages.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.outages.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	totalOutages, err := s.outages.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAreas, err := s.areas.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	avgResolution, err := s.outages.AvgResolutionHours(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalOutages:       totalOutages,
		ActiveOutages:      byStatus[domain.OutageStatusReported] + byStatus[domain.OutageStatusInProgress],
		ResolvedOutages:    byStatus[domain.OutageStatusResolved],
		TotalAreas:         totalAreas,
		TotalUsers:         totalUsers,
		AvgResolutionHours: math.Round(avgResolution*100) / 100,
		OutagesByStatus:    byStatus,
		OutagesByPriority:  byPriority,
	}
	s.storeStats(ctx, stats)
	return stats, nil
}

// AreaStats returns outage totals per area.
func (s *ReportService) AreaStats(ctx context.Context) ([]AreaStats, error) {
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.outages.CountByArea(ctx)
	if err != nil {
		return nil, err
	}

	byArea := make(map[int64]repository.AreaOutageCount, len(counts))
	for _, entry := range counts {
		byArea[entry.AreaID] = entry
	}

	result := make([]AreaStats, 0, len(areas))
	for _, area := range areas {
		entry := byArea[area.ID]
		result = append(result, AreaStats{
			AreaID:        area.ID,
			Name:          area.Name,
			Region:        area.Region,
			TotalUsers:    area.TotalUsers,
			TotalOutages:  entry.Total,
			ActiveOutages: entry.Active,
		})
	}
	return result, nil
}

func (s *ReportService) cachedStats(ctx context.Context) *Stats {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *ReportService) storeStats(ctx context.Context, stats *Stats) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
