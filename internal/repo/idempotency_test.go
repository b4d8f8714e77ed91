package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

func TestIdempotency_CreateGetAndExpiry(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "org-1", "key-1", "job-1", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.JobID != "job-1" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "org-1", "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.JobID != "job-1" {
		t.Fatalf("job id = %q, want job-1", got.JobID)
	}

	// Expired records behave like missing ones.
	if _, err := GetIdempotency(ctx, db, "org-1", "key-1", time.Now().UTC().Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired lookup = %v, want ErrNotFound", err)
	}

	// Other org or key sees nothing.
	if _, err := GetIdempotency(ctx, db, "org-2", "key-1", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-org lookup = %v, want ErrNotFound", err)
	}
	if _, err := GetIdempotency(ctx, db, "", "key-1", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank org lookup = %v, want ErrNotFound", err)
	}
}

func TestIdempotency_DuplicateKey(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "org-1", "key-1", "job-1", 201, time.Hour); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "org-1", "key-1", "job-2", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate key = %v, want ErrDuplicate", err)
	}
	// Same key under another org is independent.
	if _, err := CreateIdempotency(ctx, db, "org-2", "key-1", "job-3", 201, time.Hour); err != nil {
		t.Fatalf("cross-org create: %v", err)
	}
}
