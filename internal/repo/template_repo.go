// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// MessageTemplate model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a template is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated.
//
// Every lookup is scoped by organization: a template id that exists under a
// different organization behaves exactly like a nonexistent id, so existence
// never leaks across tenants.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateTemplate inserts a new MessageTemplate owned by organizationID.
// The template ID is a randomly generated UUID, and CreatedAt is set to UTC.
func CreateTemplate(ctx context.Context, db *gorm.DB, organizationID, name, subject, body string, isDefault bool) (*domain.MessageTemplate, error) {
	t := &domain.MessageTemplate{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Name:           name,
		Subject:        subject,
		Body:           body,
		IsDefault:      isDefault,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTemplate fetches a single template by its ID, scoped to organizationID.
// Returns ErrNotFound when missing or owned by another organization.
func GetTemplate(ctx context.Context, db *gorm.DB, id, organizationID string) (*domain.MessageTemplate, error) {
	var t domain.MessageTemplate
	err := db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates returns all templates for an organization, default templates
// first, then most recently created.
func ListTemplates(ctx context.Context, db *gorm.DB, organizationID string) ([]domain.MessageTemplate, error) {
	var out []domain.MessageTemplate
	err := db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("is_default desc, created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateTemplate updates the mutable fields of a template (name, subject,
// body, is_default), enforcing organization ownership. Returns ErrNotFound if
// no row was affected.
func UpdateTemplate(ctx context.Context, db *gorm.DB, id, organizationID, name, subject, body string, isDefault bool) error {
	res := db.WithContext(ctx).
		Model(&domain.MessageTemplate{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Updates(map[string]any{
			"name":       name,
			"subject":    subject,
			"body":       body,
			"is_default": isDefault,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTemplate removes a template, enforcing organization ownership.
// Returns ErrNotFound if no row was affected.
func DeleteTemplate(ctx context.Context, db *gorm.DB, id, organizationID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Delete(&domain.MessageTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementTemplateUsage bumps the usage counter of a template. Best effort:
// a missing row is not an error here because the dispatcher has already
// resolved the template.
func IncrementTemplateUsage(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.MessageTemplate{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
