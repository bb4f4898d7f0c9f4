package dto

import (
	"time"

	"github.com/gridwatch/outage-service/internal/domain"
)

// ReportOutageRequest payload.
type ReportOutageRequest struct {
	UserID        int64                 `json:"userId"`
	AreaID        int64                 `json:"areaId"`
	Location      string                `json:"location"`
	Description   string                `json:"description"`
	Priority      domain.OutagePriority `json:"priority"`
	AffectedUsers int                   `json:"affectedUsers"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.OutageStatus `json:"status"`
}

// OutageResponse serialized outage.
type OutageResponse struct {
	OutageID        int64                 `json:"outageId"`
	UserID          int64                 `json:"userId"`
	AreaID          int64                 `json:"areaId"`
	Location        string                `json:"location"`
	Description     string                `json:"description"`
	Status          domain.OutageStatus   `json:"status"`
	Priority        domain.OutagePriority `json:"priority"`
	AffectedUsers   int                   `json:"affectedUsers"`
	ReportedTime    time.Time             `json:"reportedTime"`
	RestorationTime *time.Time            `json:"restorationTime"`
}

// OutageFromDomain maps a domain outage to its response form.
func OutageFromDomain(outage *domain.Outage) OutageResponse {
	return OutageResponse{
		OutageID:        outage.ID,
		UserID:          outage.UserID,
		AreaID:          outage.AreaID,
		Location:        outage.Location,
		Description:     outage.Description,
		Status:          outage.Status,
		Priority:        outage.Priority,
		AffectedUsers:   outage.AffectedUsers,
		ReportedTime:    outage.ReportedTime,
		RestorationTime: outage.RestorationTime,
	}
}

// OutagesFromDomain maps a slice of outages.
func OutagesFromDomain(outages []domain.Outage) []OutageResponse {
	result := make([]OutageResponse, 0, len(outages))
	for i := range outages {
		result = append(result, OutageFromDomain(&outages[i]))
	}
	return result
}
