// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the bulk-send
// job ledger: job rows, their per-recipient outcome rows, the day-window
// recipient-count sum that backs the rate limiter, and the grouped status
// counts that back counter aggregation.
//
// The ledger is append-only from the caller's perspective: jobs and recipient
// rows are created, counters are recomputed, nothing is deleted.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

// CreateJob inserts a new BulkSendJob row. RecipientCount and RecipientIDs
// reflect the post-filter working set; SentAt is set to UTC now.
func CreateJob(ctx context.Context, db *gorm.DB, organizationID string, templateID *string, subject string, recipientIDs []string) (*domain.BulkSendJob, error) {
	j := &domain.BulkSendJob{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		TemplateID:     templateID,
		Subject:        subject,
		RecipientCount: len(recipientIDs),
		RecipientIDs:   recipientIDs,
		Status:         domain.JobStatusProcessing,
		SentAt:         time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(j).Error; err != nil {
		return nil, err
	}
	return j, nil
}

// GetJob fetches a job by ID, scoped to organizationID.
func GetJob(ctx context.Context, db *gorm.DB, id, organizationID string) (*domain.BulkSendJob, error) {
	var j domain.BulkSendJob
	err := db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&j).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJobByID fetches a job by ID without organization scoping. Used by
// internal flows (delivery events) that start from a recipient row, not a
// tenant request.
func GetJobByID(ctx context.Context, db *gorm.DB, id string) (*domain.BulkSendJob, error) {
	var j domain.BulkSendJob
	if err := db.WithContext(ctx).Where("id = ?", id).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// CountJobs returns the total number of jobs for an organization.
func CountJobs(ctx context.Context, db *gorm.DB, organizationID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.BulkSendJob{}).
		Where("organization_id = ?", organizationID).
		Count(&total).Error
	return total, err
}

// ListJobsPage returns a page of jobs for an organization, most recent first.
func ListJobsPage(ctx context.Context, db *gorm.DB, organizationID string, offset, limit int) ([]domain.BulkSendJob, error) {
	var out []domain.BulkSendJob
	err := db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("sent_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SumRecipientCount returns Σ recipient_count over the organization's jobs
// whose sent_at falls within [from, to). This is the authoritative daily
// volume used by the rate limiter.
func SumRecipientCount(ctx context.Context, db *gorm.DB, organizationID string, from, to time.Time) (int64, error) {
	var sum int64
	err := db.WithContext(ctx).
		Model(&domain.BulkSendJob{}).
		Where("organization_id = ? AND sent_at >= ? AND sent_at < ?", organizationID, from, to).
		Select("COALESCE(SUM(recipient_count), 0)").
		Scan(&sum).Error
	return sum, err
}

// CreateRecipient inserts a per-recipient outcome row for a job.
func CreateRecipient(ctx context.Context, db *gorm.DB, rec *domain.BulkSendRecipient) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// GetRecipientByDeliveryMessageID fetches a recipient row by the message ID
// assigned by the delivery transport.
func GetRecipientByDeliveryMessageID(ctx context.Context, db *gorm.DB, deliveryMessageID string) (*domain.BulkSendRecipient, error) {
	var rec domain.BulkSendRecipient
	err := db.WithContext(ctx).
		Where("delivery_message_id = ?", deliveryMessageID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecipients returns all outcome rows for a job, oldest first.
func ListRecipients(ctx context.Context, db *gorm.DB, jobID string) ([]domain.BulkSendRecipient, error) {
	var out []domain.BulkSendRecipient
	err := db.WithContext(ctx).
		Where("bulk_send_job_id = ?", jobID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// CountRecipientsByStatus groups a job's recipient rows by status and returns
// a status → count map. Missing statuses are simply absent from the map.
func CountRecipientsByStatus(ctx context.Context, db *gorm.DB, jobID string) (map[string]int, error) {
	var rows []struct {
		Status string
		N      int
	}
	err := db.WithContext(ctx).
		Model(&domain.BulkSendRecipient{}).
		Where("bulk_send_job_id = ?", jobID).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

// UpdateJobCounters writes the four recomputed outcome counters and the job
// status. Safe to call repeatedly: the values are absolute, not increments.
func UpdateJobCounters(ctx context.Context, db *gorm.DB, jobID string, delivered, read, replied, failed int, status string) error {
	return db.WithContext(ctx).
		Model(&domain.BulkSendJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"delivered_count": delivered,
			"read_count":      read,
			"replied_count":   replied,
			"failed_count":    failed,
			"status":          status,
		}).Error
}

// AdvanceRecipientStatus moves a recipient row to a later status and stamps
// the matching timestamp column. The WHERE clause enforces forward-only
// movement; ErrNotFound means the row is missing or already at (or past) the
// requested status.
func AdvanceRecipientStatus(ctx context.Context, db *gorm.DB, recipientRowID, status string, at time.Time) error {
	rank := map[string]int{
		domain.StatusSent:      0,
		domain.StatusDelivered: 1,
		domain.StatusRead:      2,
		domain.StatusReplied:   3,
	}
	target, ok := rank[status]
	if !ok {
		return gorm.ErrInvalidValue
	}

	// Statuses ranked strictly below the target are eligible sources.
	eligible := make([]string, 0, 3)
	for s, r := range rank {
		if r < target {
			eligible = append(eligible, s)
		}
	}

	updates := map[string]any{"status": status}
	switch status {
	case domain.StatusDelivered:
		updates["delivered_at"] = at
	case domain.StatusRead:
		updates["read_at"] = at
	case domain.StatusReplied:
		updates["replied_at"] = at
	}

	res := db.WithContext(ctx).
		Model(&domain.BulkSendRecipient{}).
		Where("id = ? AND status IN ?", recipientRowID, eligible).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
