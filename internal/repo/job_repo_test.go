package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedLedgerJob(t *testing.T, db *gorm.DB, org string, n int, at time.Time) *domain.BulkSendJob {
	t.Helper()
	j, err := CreateJob(context.Background(), db, org, nil, "", make([]string, n))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := db.Model(j).Update("sent_at", at).Error; err != nil {
		t.Fatalf("backdate job: %v", err)
	}
	return j
}

func TestCreateJob_SetsDefaults(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{})

	tpl := "tpl-1"
	j, err := CreateJob(context.Background(), db, "org-1", &tpl, "Hello", []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if j.ID == "" || j.RecipientCount != 2 || j.Status != domain.JobStatusProcessing {
		t.Fatalf("unexpected job: %+v", j)
	}
	if j.SentAt.IsZero() {
		t.Fatalf("SentAt not stamped")
	}

	got, err := GetJob(context.Background(), db, j.ID, "org-1")
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.TemplateID == nil || *got.TemplateID != "tpl-1" {
		t.Fatalf("TemplateID = %v", got.TemplateID)
	}
	if len(got.RecipientIDs) != 2 {
		t.Fatalf("RecipientIDs = %v", got.RecipientIDs)
	}

	// Scoped lookup: other org sees nothing.
	if _, err := GetJob(context.Background(), db, j.ID, "org-2"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-org GetJob = %v, want ErrRecordNotFound", err)
	}
}

func TestSumRecipientCount_DayWindowBoundaries(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{})

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	seedLedgerJob(t, db, "org-1", 10, from)                      // inclusive lower bound
	seedLedgerJob(t, db, "org-1", 20, to.Add(-time.Second))      // inside
	seedLedgerJob(t, db, "org-1", 5, from.Add(-time.Second))     // day before
	seedLedgerJob(t, db, "org-1", 7, to)                         // exclusive upper bound
	seedLedgerJob(t, db, "org-2", 99, from.Add(12*time.Hour))    // other org

	sum, err := SumRecipientCount(context.Background(), db, "org-1", from, to)
	if err != nil {
		t.Fatalf("SumRecipientCount: %v", err)
	}
	if sum != 30 {
		t.Fatalf("sum = %d, want 30", sum)
	}
}

func TestSumRecipientCount_EmptyWindowIsZero(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{})

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	sum, err := SumRecipientCount(context.Background(), db, "org-1", from, from.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("SumRecipientCount: %v", err)
	}
	if sum != 0 {
		t.Fatalf("sum = %d, want 0", sum)
	}
}

func TestCountRecipientsByStatus(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{}, &domain.BulkSendRecipient{})
	ctx := context.Background()

	job, err := CreateJob(ctx, db, "org-1", nil, "", []string{"r1", "r2", "r3"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	for i, status := range []string{domain.StatusSent, domain.StatusSent, domain.StatusFailed} {
		rec := &domain.BulkSendRecipient{
			BulkSendJobID: job.ID,
			RecipientID:   fmt.Sprintf("r%d", i+1),
			Status:        status,
		}
		if err := CreateRecipient(ctx, db, rec); err != nil {
			t.Fatalf("CreateRecipient: %v", err)
		}
	}

	counts, err := CountRecipientsByStatus(ctx, db, job.ID)
	if err != nil {
		t.Fatalf("CountRecipientsByStatus: %v", err)
	}
	if counts[domain.StatusSent] != 2 || counts[domain.StatusFailed] != 1 {
		t.Fatalf("counts = %v", counts)
	}
	if _, present := counts[domain.StatusRead]; present {
		t.Fatalf("absent statuses must be missing from the map, got %v", counts)
	}
}

func TestAdvanceRecipientStatus_ForwardOnly(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{}, &domain.BulkSendRecipient{})
	ctx := context.Background()

	job, err := CreateJob(ctx, db, "org-1", nil, "", []string{"r1"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	rec := &domain.BulkSendRecipient{BulkSendJobID: job.ID, RecipientID: "r1", Status: domain.StatusSent}
	if err := CreateRecipient(ctx, db, rec); err != nil {
		t.Fatalf("CreateRecipient: %v", err)
	}

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if err := AdvanceRecipientStatus(ctx, db, rec.ID, domain.StatusRead, at); err != nil {
		t.Fatalf("sent -> read: %v", err)
	}

	var got domain.BulkSendRecipient
	if err := db.First(&got, "id = ?", rec.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != domain.StatusRead {
		t.Fatalf("status = %q, want read", got.Status)
	}
	if got.ReadAt == nil || !got.ReadAt.Equal(at) {
		t.Fatalf("ReadAt = %v, want %v", got.ReadAt, at)
	}
	if got.DeliveredAt != nil {
		t.Fatalf("DeliveredAt must stay nil on a skip-ahead event")
	}

	// Backward move (read -> delivered) is not eligible.
	if err := AdvanceRecipientStatus(ctx, db, rec.ID, domain.StatusDelivered, at); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("backward move = %v, want ErrRecordNotFound", err)
	}
	// Same status is not eligible either.
	if err := AdvanceRecipientStatus(ctx, db, rec.ID, domain.StatusRead, at); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("same-status move = %v, want ErrRecordNotFound", err)
	}
	// Forward again still works.
	if err := AdvanceRecipientStatus(ctx, db, rec.ID, domain.StatusReplied, at.Add(time.Minute)); err != nil {
		t.Fatalf("read -> replied: %v", err)
	}
}

func TestAdvanceRecipientStatus_UnknownStatus(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{}, &domain.BulkSendRecipient{})

	err := AdvanceRecipientStatus(context.Background(), db, "whatever", "bounced", time.Now())
	if !errors.Is(err, gorm.ErrInvalidValue) {
		t.Fatalf("unknown status = %v, want ErrInvalidValue", err)
	}
}

func TestGetRecipientByDeliveryMessageID(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{}, &domain.BulkSendRecipient{})
	ctx := context.Background()

	job, err := CreateJob(ctx, db, "org-1", nil, "", []string{"r1"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	rec := &domain.BulkSendRecipient{
		BulkSendJobID:     job.ID,
		RecipientID:       "r1",
		DeliveryMessageID: "msg-123",
		Status:            domain.StatusSent,
	}
	if err := CreateRecipient(ctx, db, rec); err != nil {
		t.Fatalf("CreateRecipient: %v", err)
	}

	got, err := GetRecipientByDeliveryMessageID(ctx, db, "msg-123")
	if err != nil {
		t.Fatalf("GetRecipientByDeliveryMessageID: %v", err)
	}
	if got.ID != rec.ID {
		t.Fatalf("got row %q, want %q", got.ID, rec.ID)
	}

	if _, err := GetRecipientByDeliveryMessageID(ctx, db, "msg-404"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing id = %v, want ErrRecordNotFound", err)
	}
}

func TestUpdateJobCounters_Absolute(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{})
	ctx := context.Background()

	job, err := CreateJob(ctx, db, "org-1", nil, "", []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if err := UpdateJobCounters(ctx, db, job.ID, 2, 1, 0, 0, domain.JobStatusCompleted); err != nil {
		t.Fatalf("UpdateJobCounters: %v", err)
	}
	// Repeated writes overwrite, they do not accumulate.
	if err := UpdateJobCounters(ctx, db, job.ID, 1, 1, 1, 1, domain.JobStatusCompleted); err != nil {
		t.Fatalf("UpdateJobCounters: %v", err)
	}

	got, err := GetJob(ctx, db, job.ID, "org-1")
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.DeliveredCount != 1 || got.ReadCount != 1 || got.RepliedCount != 1 || got.FailedCount != 1 {
		t.Fatalf("counters = %d/%d/%d/%d", got.DeliveredCount, got.ReadCount, got.RepliedCount, got.FailedCount)
	}
	if got.Status != domain.JobStatusCompleted {
		t.Fatalf("status = %q", got.Status)
	}
}

func TestListJobsPage_OrderAndPaging(t *testing.T) {
	db := newTestDB(t, &domain.BulkSendJob{})

	base := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	old := seedLedgerJob(t, db, "org-1", 1, base)
	mid := seedLedgerJob(t, db, "org-1", 1, base.Add(time.Hour))
	newest := seedLedgerJob(t, db, "org-1", 1, base.Add(2*time.Hour))
	seedLedgerJob(t, db, "org-2", 1, base.Add(3*time.Hour))

	total, err := CountJobs(context.Background(), db, "org-1")
	if err != nil {
		t.Fatalf("CountJobs: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	page, err := ListJobsPage(context.Background(), db, "org-1", 0, 2)
	if err != nil {
		t.Fatalf("ListJobsPage: %v", err)
	}
	if len(page) != 2 || page[0].ID != newest.ID || page[1].ID != mid.ID {
		t.Fatalf("page 1 order wrong: %v", page)
	}

	page, err = ListJobsPage(context.Background(), db, "org-1", 2, 2)
	if err != nil {
		t.Fatalf("ListJobsPage: %v", err)
	}
	if len(page) != 1 || page[0].ID != old.ID {
		t.Fatalf("page 2 wrong: %v", page)
	}
}
