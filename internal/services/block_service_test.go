package services

import (
	"context"
	"errors"
	"sort"
	"testing"
)

func TestBlock_CreateAndDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := &BlockRegistry{DB: db}
	ctx := context.Background()

	b, err := svc.Block(ctx, "r1", "org-1", "unsubscribed")
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if b.RecipientID != "r1" || b.OrganizationID != "org-1" || b.Reason != "unsubscribed" {
		t.Fatalf("unexpected block row: %+v", b)
	}
	if b.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not stamped")
	}

	if _, err := svc.Block(ctx, "r1", "org-1", "again"); !errors.Is(err, ErrAlreadyBlocked) {
		t.Fatalf("duplicate block = %v, want ErrAlreadyBlocked", err)
	}

	// Same recipient, different organization is a separate block.
	if _, err := svc.Block(ctx, "r1", "org-2", ""); err != nil {
		t.Fatalf("cross-org block: %v", err)
	}
}

func TestBlock_RejectsBlankIdentifiers(t *testing.T) {
	db := newTestDB(t)
	svc := &BlockRegistry{DB: db}

	if _, err := svc.Block(context.Background(), "  ", "org-1", ""); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("blank recipient = %v, want ErrInvalidBlock", err)
	}
	if _, err := svc.Block(context.Background(), "r1", "", ""); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("blank organization = %v, want ErrInvalidBlock", err)
	}
}

func TestUnblock(t *testing.T) {
	db := newTestDB(t)
	svc := &BlockRegistry{DB: db}
	ctx := context.Background()

	if _, err := svc.Block(ctx, "r1", "org-1", ""); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if err := svc.Unblock(ctx, "r1", "org-1"); err != nil {
		t.Fatalf("Unblock: %v", err)
	}
	if err := svc.Unblock(ctx, "r1", "org-1"); !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("second Unblock = %v, want ErrBlockNotFound", err)
	}

	// Unblocked recipient no longer filters.
	hits, err := svc.FilterBlocked(ctx, "org-1", []string{"r1"})
	if err != nil {
		t.Fatalf("FilterBlocked: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no blocked recipients, got %v", hits)
	}
}

func TestFilterBlocked_ReturnsOnlyBlockedSubset(t *testing.T) {
	db := newTestDB(t)
	svc := &BlockRegistry{DB: db}
	ctx := context.Background()

	for _, id := range []string{"r1", "r3"} {
		if _, err := svc.Block(ctx, id, "org-1", ""); err != nil {
			t.Fatalf("Block %s: %v", id, err)
		}
	}
	// Blocked against a different org; must not match.
	if _, err := svc.Block(ctx, "r2", "org-2", ""); err != nil {
		t.Fatalf("Block: %v", err)
	}

	hits, err := svc.FilterBlocked(ctx, "org-1", []string{"r1", "r2", "r3", "r4"})
	if err != nil {
		t.Fatalf("FilterBlocked: %v", err)
	}
	sort.Strings(hits)
	if len(hits) != 2 || hits[0] != "r1" || hits[1] != "r3" {
		t.Fatalf("FilterBlocked = %v, want [r1 r3]", hits)
	}

	empty, err := svc.FilterBlocked(ctx, "org-1", nil)
	if err != nil {
		t.Fatalf("FilterBlocked(nil): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("FilterBlocked(nil) = %v, want empty", empty)
	}
}
