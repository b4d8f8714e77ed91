// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Candidate
// profile model consumed by the personalization engine.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

// GetCandidate fetches a candidate profile by ID. Returns ErrNotFound when
// no profile exists for the recipient.
func GetCandidate(ctx context.Context, db *gorm.DB, id string) (*domain.Candidate, error) {
	var c domain.Candidate
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCandidate creates or replaces a candidate profile row. Used by the
// seeding path and the profile-sync boundary.
func UpsertCandidate(ctx context.Context, db *gorm.DB, c *domain.Candidate) error {
	return db.WithContext(ctx).Save(c).Error
}
