package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

func TestTemplateCRUD_OrganizationScoped(t *testing.T) {
	db := newTestDB(t, &domain.MessageTemplate{})
	ctx := context.Background()

	created, err := CreateTemplate(ctx, db, "org-1", "Intro", "subj", "body", false)
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	got, err := GetTemplate(ctx, db, created.ID, "org-1")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.Name != "Intro" || got.UsageCount != 0 {
		t.Fatalf("unexpected template: %+v", got)
	}

	if _, err := GetTemplate(ctx, db, created.ID, "org-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-org get = %v, want ErrNotFound", err)
	}
	if err := UpdateTemplate(ctx, db, created.ID, "org-2", "x", "", "b", false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-org update = %v, want ErrRecordNotFound", err)
	}
	if err := DeleteTemplate(ctx, db, created.ID, "org-2"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-org delete = %v, want ErrRecordNotFound", err)
	}

	if err := UpdateTemplate(ctx, db, created.ID, "org-1", "New name", "new subj", "new body", true); err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}
	got, err = GetTemplate(ctx, db, created.ID, "org-1")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.Name != "New name" || got.Subject != "new subj" || got.Body != "new body" || !got.IsDefault {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := DeleteTemplate(ctx, db, created.ID, "org-1"); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if err := DeleteTemplate(ctx, db, created.ID, "org-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete = %v, want ErrRecordNotFound", err)
	}
}

func TestListTemplates_DefaultsFirstThenNewest(t *testing.T) {
	db := newTestDB(t, &domain.MessageTemplate{})
	ctx := context.Background()

	if _, err := CreateTemplate(ctx, db, "org-1", "Plain", "", "b", false); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	def, err := CreateTemplate(ctx, db, "org-1", "Default", "", "b", true)
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	if _, err := CreateTemplate(ctx, db, "org-2", "Elsewhere", "", "b", true); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	list, err := ListTemplates(ctx, db, "org-1")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(list) != 2 || list[0].ID != def.ID {
		t.Fatalf("order wrong: %v", list)
	}
}

func TestIncrementTemplateUsage(t *testing.T) {
	db := newTestDB(t, &domain.MessageTemplate{})
	ctx := context.Background()

	created, err := CreateTemplate(ctx, db, "org-1", "Intro", "", "b", false)
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	if err := IncrementTemplateUsage(ctx, db, created.ID); err != nil {
		t.Fatalf("IncrementTemplateUsage: %v", err)
	}
	if err := IncrementTemplateUsage(ctx, db, created.ID); err != nil {
		t.Fatalf("IncrementTemplateUsage: %v", err)
	}

	got, err := GetTemplate(ctx, db, created.ID, "org-1")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.UsageCount != 2 {
		t.Fatalf("UsageCount = %d, want 2", got.UsageCount)
	}

	// Missing id is a no-op, not an error.
	if err := IncrementTemplateUsage(ctx, db, "missing"); err != nil {
		t.Fatalf("missing id: %v", err)
	}
}
