// Package domain defines the persistence models for message templates, bulk
// send jobs and their per-recipient outcome rows, recipient blocks, and
// candidate profiles. These types are mapped with GORM and form the core data
// layer of the outreach backend.
package domain

import (
	"time"
)

// Recipient statuses. A recipient row only ever moves forward along this
// chain; it never regresses to an earlier status.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
	StatusReplied   = "replied"
	StatusFailed    = "failed"
)

// Job statuses.
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
)

// MessageTemplate is a reusable, organization-owned message body/subject pair
// containing personalization placeholders. Template names are not unique; they
// only need to disambiguate templates in a picker.
type MessageTemplate struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	OrganizationID string    `json:"organization_id" gorm:"type:varchar(64);not null;index:idx_org_templates"`
	Name           string    `json:"name"            gorm:"type:varchar(255);not null"`
	Subject        string    `json:"subject"         gorm:"type:varchar(255)"`
	Body           string    `json:"body"            gorm:"type:text;not null"`
	IsDefault      bool      `json:"is_default"      gorm:"not null;default:false"`
	UsageCount     int       `json:"usage_count"     gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for MessageTemplate.
func (MessageTemplate) TableName() string { return "message_templates" }

// BulkSendJob is the ledger entry for one dispatch invocation. It is created
// after recipient filtering and before any individual send, with
// RecipientCount fixed to the post-filter count. The four outcome counters are
// only ever written by the aggregation recompute; a job is never deleted.
type BulkSendJob struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	OrganizationID string    `json:"organization_id" gorm:"type:varchar(64);not null;index:idx_org_jobs,priority:1"`
	TemplateID     *string   `json:"template_id,omitempty" gorm:"type:char(36)"`
	Subject        string    `json:"subject"         gorm:"type:varchar(255)"`
	RecipientCount int       `json:"recipient_count" gorm:"not null"`
	RecipientIDs   []string  `json:"recipient_ids"   gorm:"serializer:json;type:text"`
	DeliveredCount int       `json:"delivered_count" gorm:"not null;default:0"`
	ReadCount      int       `json:"read_count"      gorm:"not null;default:0"`
	RepliedCount   int       `json:"replied_count"   gorm:"not null;default:0"`
	FailedCount    int       `json:"failed_count"    gorm:"not null;default:0"`
	Status         string    `json:"status"          gorm:"type:varchar(16);not null"`
	SentAt         time.Time `json:"sent_at"         gorm:"index:idx_org_jobs,priority:2"`
}

// TableName returns the database table name for BulkSendJob.
func (BulkSendJob) TableName() string { return "bulk_send_jobs" }

// BulkSendRecipient records the outcome of one send attempt within a job. The
// row is written immediately after the attempt (success or failure), never
// before, so no placeholder rows exist for in-flight sends.
type BulkSendRecipient struct {
	ID                  string     `json:"id"                   gorm:"type:char(36);primaryKey"`
	BulkSendJobID       string     `json:"bulk_send_job_id"     gorm:"type:char(36);not null;index:idx_job_recipients"`
	RecipientID         string     `json:"recipient_id"         gorm:"type:varchar(64);not null;index"`
	DeliveryMessageID   string     `json:"delivery_message_id"  gorm:"type:varchar(128);index"`
	PersonalizedContent string     `json:"personalized_content" gorm:"type:text"`
	Status              string     `json:"status"               gorm:"type:varchar(16);not null;check:status IN ('sent','delivered','read','replied','failed')"`
	DeliveredAt         *time.Time `json:"delivered_at,omitempty"`
	ReadAt              *time.Time `json:"read_at,omitempty"`
	RepliedAt           *time.Time `json:"replied_at,omitempty"`
	FailedReason        string     `json:"failed_reason,omitempty" gorm:"type:text"`
	CreatedAt           time.Time  `json:"created_at"`

	// Job is the parent ledger entry. Recipient rows are cascade-deleted
	// if their job is removed.
	Job BulkSendJob `json:"-" gorm:"foreignKey:BulkSendJobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for BulkSendRecipient.
func (BulkSendRecipient) TableName() string { return "bulk_send_recipients" }

// Block marks that a recipient has opted out of contact from an organization.
// One row per (recipient, organization) pair; created by the recipient and
// deleted by the same recipient.
type Block struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	RecipientID    string    `json:"recipient_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_block_recipient_org,priority:1"`
	OrganizationID string    `json:"organization_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_block_recipient_org,priority:2;index"`
	Reason         string    `json:"reason,omitempty" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for Block.
func (Block) TableName() string { return "blocks" }

// Candidate is the recipient profile read for personalization. Any field may
// be empty; rendering degrades gracefully on missing values.
type Candidate struct {
	ID          string    `json:"id"           gorm:"type:varchar(64);primaryKey"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(255)"`
	Handle      string    `json:"handle"       gorm:"type:varchar(255)"`
	Skills      []string  `json:"skills"       gorm:"serializer:json;type:text"`
	LatestRole  string    `json:"latest_role"  gorm:"type:varchar(255)"`
	Location    string    `json:"location"     gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Candidate.
func (Candidate) TableName() string { return "candidates" }
