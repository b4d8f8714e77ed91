// Template HTTP handlers.
//
// This file exposes REST endpoints for the organization-scoped template store:
//   - POST   /organizations/{id}/templates            (create)
//   - GET    /organizations/{id}/templates            (list)
//   - GET    /organizations/{id}/templates/{tplID}    (detail)
//   - PUT    /organizations/{id}/templates/{tplID}    (update)
//   - DELETE /organizations/{id}/templates/{tplID}    (delete)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexBaum-ai/outreach-backend/internal/services"
)

// TemplateRequest is the JSON payload for creating or updating a template.
type TemplateRequest struct {
	// Name labels the template for UI pickers (1–255 chars).
	Name string `json:"name" binding:"required,min=1,max=255" example:"Backend outreach v2"`
	// Subject optionally sets the message subject line.
	Subject string `json:"subject,omitempty" example:"Opportunity at Acme"`
	// Body is the message body, may contain {{ placeholders }}.
	Body string `json:"body" binding:"required,min=1" example:"Hi {{ candidate_name }}, your {{ skills }} background caught our eye."`
	// IsDefault marks the template as the organization's default.
	IsDefault bool `json:"is_default"`
}

// CreateTemplate godoc
// @ID          createTemplate
// @Summary     Create a message template
// @Tags        Templates
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                    true  "Organization ID"  example(org-acme)
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
//
// @Success     201  {object}  domain.MessageTemplate
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/templates [post]
func (h *Handlers) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	t, err := h.tplSvc.Create(c.Request.Context(), organizationID(c), req.Name, req.Subject, req.Body, req.IsDefault)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTemplate) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and body are required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, t)
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List message templates
// @Description Returns the organization's templates, defaults first.
// @Tags        Templates
// @Produce     json
//
// @Param       id  path  string  true  "Organization ID"  example(org-acme)
//
// @Success     200  {array}   domain.MessageTemplate
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	items, err := h.tplSvc.List(c.Request.Context(), organizationID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetTemplate godoc
// @ID          getTemplate
// @Summary     Get one message template
// @Tags        Templates
// @Produce     json
//
// @Param       id     path  string  true  "Organization ID"  example(org-acme)
// @Param       tplID  path  string  true  "Template ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.MessageTemplate
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/templates/{tplID} [get]
func (h *Handlers) GetTemplate(c *gin.Context) {
	t, err := h.tplSvc.GetByID(c.Request.Context(), c.Param("tplID"), organizationID(c))
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, t)
}

// UpdateTemplate godoc
// @ID          updateTemplate
// @Summary     Update a message template
// @Tags        Templates
// @Accept      json
// @Produce     json
//
// @Param       id     path  string                    true  "Organization ID"  example(org-acme)
// @Param       tplID  path  string                    true  "Template ID (UUID)"  format(uuid)
// @Param       body   body  handlers.TemplateRequest  true  "Template payload"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/templates/{tplID} [put]
func (h *Handlers) UpdateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Body) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and body are required")
		return
	}

	err := h.tplSvc.Update(c.Request.Context(), c.Param("tplID"), organizationID(c), req.Name, req.Subject, req.Body, req.IsDefault)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTemplateNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
		case errors.Is(err, services.ErrInvalidTemplate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and body are required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// DeleteTemplate godoc
// @ID          deleteTemplate
// @Summary     Delete a message template
// @Tags        Templates
// @Produce     json
//
// @Param       id     path  string  true  "Organization ID"  example(org-acme)
// @Param       tplID  path  string  true  "Template ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/templates/{tplID} [delete]
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	err := h.tplSvc.Delete(c.Request.Context(), c.Param("tplID"), organizationID(c))
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
