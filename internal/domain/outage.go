package domain

import "time"

// OutageStatus enumerates lifecycle states for outages.
type OutageStatus string

const (
	OutageStatusReported   OutageStatus = "REPORTED"
	OutageStatusInProgress OutageStatus = "IN_PROGRESS"
	OutageStatusResolved   OutageStatus = "RESOLVED"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s OutageStatus) bool {
	switch s {
	case OutageStatusReported, OutageStatusInProgress, OutageStatusResolved:
		return true
	}
	return false
}

// OutagePriority enumerates reporter-supplied urgency.
type OutagePriority string

const (
	OutagePriorityLow      OutagePriority = "LOW"
	OutagePriorityMedium   OutagePriority = "MEDIUM"
	OutagePriorityHigh     OutagePriority = "HIGH"
	OutagePriorityCritical OutagePriority = "CRITICAL"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p OutagePriority) bool {
	switch p {
	case OutagePriorityLow, OutagePriorityMedium, OutagePriorityHigh, OutagePriorityCritical:
		return true
	}
	return false
}

// Outage is the aggregate for reported power outages. UserID and AreaID
// always reference existing rows; ReportedTime is stamped once at creation
// and RestorationTime is non-nil only after a transition into RESOLVED.
type Outage struct {
	ID              int64
	UserID          int64
	AreaID          int64
	Location        string
	Description     string
	Status          OutageStatus
	Priority        OutagePriority
	AffectedUsers   int
	ReportedTime    time.Time
	RestorationTime *time.Time
}
