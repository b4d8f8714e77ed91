// Package services – BlockRegistry
//
// This file implements recipient-side blocking. A block is a bare existence
// row keyed by (recipient, organization); its only consumer inside dispatch is
// the batched membership lookup that prunes the recipient list before a job is
// created.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
)

// BlockRegistry provides the block/unblock operations and the batched filter
// used by the dispatcher.
type BlockRegistry struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Block records that recipientID no longer wants contact from organizationID.
// Returns ErrAlreadyBlocked when the pair is already blocked; the conflict is
// surfaced rather than swallowed so clients can distinguish it.
func (s *BlockRegistry) Block(ctx context.Context, recipientID, organizationID, reason string) (*domain.Block, error) {
	recipientID = strings.TrimSpace(recipientID)
	organizationID = strings.TrimSpace(organizationID)
	if recipientID == "" || organizationID == "" {
		return nil, ErrInvalidBlock
	}
	b, err := repo.CreateBlock(ctx, s.DB, recipientID, organizationID, strings.TrimSpace(reason))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyBlocked
		}
		return nil, err
	}
	return b, nil
}

// Unblock removes the block for (recipientID, organizationID). Returns
// ErrBlockNotFound when no block row existed.
func (s *BlockRegistry) Unblock(ctx context.Context, recipientID, organizationID string) error {
	err := repo.DeleteBlock(ctx, s.DB, recipientID, organizationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBlockNotFound
	}
	return err
}

// FilterBlocked returns the subset of recipientIDs with an active block
// against organizationID. One IN query regardless of list size; the result
// order is unspecified. No side effects.
func (s *BlockRegistry) FilterBlocked(ctx context.Context, organizationID string, recipientIDs []string) ([]string, error) {
	return repo.ListBlockedRecipients(ctx, s.DB, organizationID, recipientIDs)
}
