package dto

import (
	"time"

	"github.com/gridwatch/outage-service/internal/domain"
)

// AreaRequest payload for create/update.
type AreaRequest struct {
	AreaName   string `json:"areaName"`
	Region     string `json:"region"`
	TotalUsers int    `json:"totalUsers"`
}

// AreaResponse serialized area.
type AreaResponse struct {
	AreaID     int64     `json:"areaId"`
	AreaName   string    `json:"areaName"`
	Region     string    `json:"region"`
	TotalUsers int       `json:"totalUsers"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AreaFromDomain maps a domain area to its response form.
func AreaFromDomain(area *domain.Area) AreaResponse {
	return AreaResponse{
		AreaID:     area.ID,
		AreaName:   area.Name,
		Region:     area.Region,
		TotalUsers: area.TotalUsers,
		CreatedAt:  area.CreatedAt,
	}
}

// AreasFromDomain maps a slice of areas.
func AreasFromDomain(areas []domain.Area) []AreaResponse {
	result := make([]AreaResponse, 0, len(areas))
	for i := range areas {
		result = append(result, AreaFromDomain(&areas[i]))
	}
	return result
}
