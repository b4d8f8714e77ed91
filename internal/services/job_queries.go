// Package services – job read side
//
// Read-only accessors for the job ledger, consumed by the HTTP layer for the
// job list and detail endpoints. These live on DispatchService because the
// ledger is its write domain; no separate read model is warranted at this
// scale.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
)

// ErrJobNotFound marks a job id that does not exist for the organization.
var ErrJobNotFound = errors.New("bulk send job not found")

// GetJob returns one job scoped to the organization, with its per-recipient
// rows attached for the detail view.
func (s *DispatchService) GetJob(ctx context.Context, organizationID, jobID string) (*domain.BulkSendJob, []domain.BulkSendRecipient, error) {
	job, err := repo.GetJob(ctx, s.DB, jobID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, err
	}
	recs, err := repo.ListRecipients(ctx, s.DB, job.ID)
	if err != nil {
		return nil, nil, err
	}
	return job, recs, nil
}

// ListJobsPage returns a page of the organization's jobs, newest first, and
// the total count for pagination metadata.
func (s *DispatchService) ListJobsPage(ctx context.Context, organizationID string, page, pageSize int) ([]domain.BulkSendJob, int64, error) {
	total, err := repo.CountJobs(ctx, s.DB, organizationID)
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	items, err := repo.ListJobsPage(ctx, s.DB, organizationID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
