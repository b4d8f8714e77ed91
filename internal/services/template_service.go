// Package services – TemplateService
//
// This file implements CRUD over organization-scoped message templates. The
// dispatcher only needs GetByID; the remaining operations serve the admin
// surface. Every operation is scoped by organization so template existence
// never leaks across tenants.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
)

// TemplateService manages the lifecycle of reusable message templates.
type TemplateService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create inserts a new template for the organization. Name and body are
// required; names are not unique (UI disambiguation only).
func (s *TemplateService) Create(ctx context.Context, organizationID, name, subject, body string, isDefault bool) (*domain.MessageTemplate, error) {
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	if name == "" || body == "" {
		return nil, ErrInvalidTemplate
	}
	return repo.CreateTemplate(ctx, s.DB, organizationID, name, strings.TrimSpace(subject), body, isDefault)
}

// GetByID fetches a template scoped to the organization. A template owned by
// a different organization yields ErrTemplateNotFound, identical to a
// nonexistent id.
func (s *TemplateService) GetByID(ctx context.Context, templateID, organizationID string) (*domain.MessageTemplate, error) {
	t, err := repo.GetTemplate(ctx, s.DB, templateID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns the organization's templates, defaults first.
func (s *TemplateService) List(ctx context.Context, organizationID string) ([]domain.MessageTemplate, error) {
	return repo.ListTemplates(ctx, s.DB, organizationID)
}

// Update replaces the mutable fields of a template.
func (s *TemplateService) Update(ctx context.Context, templateID, organizationID, name, subject, body string, isDefault bool) error {
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	if name == "" || body == "" {
		return ErrInvalidTemplate
	}
	err := repo.UpdateTemplate(ctx, s.DB, templateID, organizationID, name, strings.TrimSpace(subject), body, isDefault)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTemplateNotFound
	}
	return err
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, templateID, organizationID string) error {
	err := repo.DeleteTemplate(ctx, s.DB, templateID, organizationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTemplateNotFound
	}
	return err
}
