package domain

import "time"

// Area represents a named service area of the grid.
type Area struct {
	ID         int64
	Name       string
	Region     string
	TotalUsers int
	CreatedAt  time.Time
}
