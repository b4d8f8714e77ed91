// Package domain defines the core persistence models for the application.
package domain

import "time"

// Idempotency represents a recorded result of a previously processed dispatch,
// keyed by (organization_id, key). It enables safe retries of the bulk-send
// endpoint by returning the originally created job without re-sending.
type Idempotency struct {
	ID             string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	OrganizationID string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_org_key,priority:1"`
	Key            string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_org_key,priority:2"`
	JobID          string    `gorm:"type:TEXT NOT NULL"`
	Status         int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt      time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt      time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
