// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Block model.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

// ErrDuplicate indicates a row already exists for a unique key
// (e.g. a block for the same (recipient, organization) pair).
var ErrDuplicate = errors.New("duplicate")

// CreateBlock inserts a block row for (recipientID, organizationID).
// Returns ErrDuplicate when the pair is already blocked.
func CreateBlock(ctx context.Context, db *gorm.DB, recipientID, organizationID, reason string) (*domain.Block, error) {
	b := &domain.Block{
		ID:             uuid.NewString(),
		RecipientID:    recipientID,
		OrganizationID: organizationID,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return b, nil
}

// DeleteBlock removes the block row for (recipientID, organizationID).
// Returns ErrNotFound if no row existed.
func DeleteBlock(ctx context.Context, db *gorm.DB, recipientID, organizationID string) error {
	res := db.WithContext(ctx).
		Where("recipient_id = ? AND organization_id = ?", recipientID, organizationID).
		Delete(&domain.Block{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBlockedRecipients returns the subset of recipientIDs that have an active
// block against organizationID, in a single IN query. Order of the result is
// unspecified.
func ListBlockedRecipients(ctx context.Context, db *gorm.DB, organizationID string, recipientIDs []string) ([]string, error) {
	if len(recipientIDs) == 0 {
		return nil, nil
	}
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Block{}).
		Where("organization_id = ? AND recipient_id IN ?", organizationID, recipientIDs).
		Pluck("recipient_id", &out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations;
	// Postgres says "duplicate key value violates unique constraint".
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
