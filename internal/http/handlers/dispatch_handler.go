// Bulk dispatch HTTP handlers.
//
// This file exposes REST endpoints for bulk message jobs:
//   - POST /organizations/{id}/bulk-messages           (dispatch a batch)
//   - GET  /organizations/{id}/bulk-messages           (list jobs, paginated)
//   - GET  /organizations/{id}/bulk-messages/{jobID}   (job detail + recipients)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Batch-level preconditions map to
// distinct statuses (429 daily cap, 422 all blocked, 404 missing template) so
// clients can branch without parsing messages.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
	"github.com/AlexBaum-ai/outreach-backend/internal/http/middleware"
	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
	"github.com/AlexBaum-ai/outreach-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// BulkDispatcher defines the dispatch operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BulkDispatcher interface {
	// Dispatch runs one bulk send for the organization.
	Dispatch(ctx context.Context, organizationID string, in services.DispatchInput) (*services.DispatchResult, error)
	// GetJob returns one job and its recipient rows, organization-scoped.
	GetJob(ctx context.Context, organizationID, jobID string) (*domain.BulkSendJob, []domain.BulkSendRecipient, error)
	// ListJobsPage returns a page of jobs and the total count.
	ListJobsPage(ctx context.Context, organizationID string, page, pageSize int) ([]domain.BulkSendJob, int64, error)
	// ApplyDeliveryEvent advances a recipient row along the delivery chain.
	ApplyDeliveryEvent(ctx context.Context, deliveryMessageID, event string, at time.Time) error
}

// TemplateManager defines template CRUD consumed by HTTP handlers.
type TemplateManager interface {
	Create(ctx context.Context, organizationID, name, subject, body string, isDefault bool) (*domain.MessageTemplate, error)
	GetByID(ctx context.Context, templateID, organizationID string) (*domain.MessageTemplate, error)
	List(ctx context.Context, organizationID string) ([]domain.MessageTemplate, error)
	Update(ctx context.Context, templateID, organizationID, name, subject, body string, isDefault bool) error
	Delete(ctx context.Context, templateID, organizationID string) error
}

// BlockManager defines recipient block operations consumed by HTTP handlers.
type BlockManager interface {
	Block(ctx context.Context, recipientID, organizationID, reason string) (*domain.Block, error)
	Unblock(ctx context.Context, recipientID, organizationID string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for dispatch, templates, blocks, and
// delivery events. It depends on abstract service interfaces to keep
// transport concerns separate from business logic. The DB handle is used only
// for idempotency records, which are a transport concern.
type Handlers struct {
	dispatchSvc BulkDispatcher
	tplSvc      TemplateManager
	blockSvc    BlockManager

	db             *gorm.DB
	idempotencyTTL time.Duration
	maxRecipients  int
}

// New constructs a Handlers instance bound to the given services.
// maxRecipients caps the recipient list accepted per dispatch request.
func New(dispatchSvc BulkDispatcher, tplSvc TemplateManager, blockSvc BlockManager, db *gorm.DB, idempotencyTTL time.Duration, maxRecipients int) *Handlers {
	if maxRecipients <= 0 {
		maxRecipients = services.DefaultDailyRecipientCap
	}
	return &Handlers{
		dispatchSvc:    dispatchSvc,
		tplSvc:         tplSvc,
		blockSvc:       blockSvc,
		db:             db,
		idempotencyTTL: idempotencyTTL,
		maxRecipients:  maxRecipients,
	}
}

// organizationID extracts the acting organization from the route. Dispatch
// routes carry it as the :id path parameter.
func organizationID(c *gin.Context) string {
	return c.Param("id")
}

//
// DTOs
//

// DispatchRequest is the JSON payload for dispatching a bulk message batch.
type DispatchRequest struct {
	// RecipientIDs lists the target recipients (1..cap after deduplication).
	RecipientIDs []string `json:"recipient_ids" binding:"required" example:"cand-1,cand-2"`
	// Body is the literal message body; ignored when TemplateID is set.
	Body string `json:"body" example:"Hi {{ candidate_name }}, we're hiring!"`
	// TemplateID optionally references a stored template whose body and
	// subject override the literal fields.
	TemplateID string `json:"template_id,omitempty" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Subject optionally sets the message subject.
	Subject string `json:"subject,omitempty" example:"Opportunity at Acme"`
	// Personalize enables per-recipient placeholder substitution.
	Personalize bool `json:"personalize"`
}

// JobDetailResponse wraps a job and its per-recipient rows.
type JobDetailResponse struct {
	Job        domain.BulkSendJob         `json:"job"`
	Recipients []domain.BulkSendRecipient `json:"recipients"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListJobsResponse wraps a page of jobs and pagination information.
type ListJobsResponse struct {
	Jobs       []domain.BulkSendJob `json:"jobs"`
	Pagination Pagination           `json:"pagination"`
}

//
// Helpers
//

// atoiDefault parses s as an int, falling back to def for empty or
// unparseable input. Query params only; no error surfaced to the client.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = atoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = atoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// DispatchBulkMessage godoc
// @ID          dispatchBulkMessage
// @Summary     Dispatch a bulk message batch
// @Description Sends a templated or literal message to up to the daily cap of recipients, skipping blocked ones. Partial failures complete the job.
// @Tags        BulkMessages
// @Accept      json
// @Produce     json
//
// @Param       id               path    string  true  "Organization ID"  example(org-acme)
// @Param       Idempotency-Key  header  string  false "Dedupe key for safe retries"
// @Param       body             body    handlers.DispatchRequest  true  "Dispatch payload"
//
// @Success     201  {object}  services.DispatchResult
// @Success     200  {object}  handlers.JobDetailResponse  "Idempotent replay of an earlier dispatch"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     422  {object}  handlers.ErrorResponse  "All recipients blocked"
// @Failure     429  {object}  handlers.ErrorResponse  "Daily limit exceeded"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/bulk-messages [post]
func (h *Handlers) DispatchBulkMessage(c *gin.Context) {
	ctx := c.Request.Context()
	org := organizationID(c)
	if org == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "organization id required")
		return
	}

	// Serve idempotent replays before touching the dispatcher.
	if middleware.IsReplay(c) {
		if key, hasKey := middleware.GetIdempotencyKey(c); hasKey {
			if rec, err := repo.GetIdempotency(ctx, h.db, org, key, time.Now().UTC()); err == nil {
				job, recs, err := h.dispatchSvc.GetJob(ctx, org, rec.JobID)
				if err == nil {
					ok(c, http.StatusOK, JobDetailResponse{Job: *job, Recipients: recs})
					return
				}
			}
		}
		// Replay record vanished; fall through and dispatch normally.
	}

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if len(req.RecipientIDs) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipient_ids must not be empty")
		return
	}
	if len(req.RecipientIDs) > h.maxRecipients {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest,
			fmt.Sprintf("recipient_ids must contain at most %d entries", h.maxRecipients))
		return
	}

	res, err := h.dispatchSvc.Dispatch(ctx, org, services.DispatchInput{
		RecipientIDs: req.RecipientIDs,
		Body:         req.Body,
		TemplateID:   req.TemplateID,
		Subject:      req.Subject,
		Personalize:  req.Personalize,
	})
	if err != nil {
		h.failDispatch(c, err)
		return
	}

	// Record the idempotency key after a successful dispatch (best effort).
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey {
		if _, err := repo.CreateIdempotency(ctx, h.db, org, key, res.JobID, http.StatusCreated, h.idempotencyTTL); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not stored")
		}
	}

	ok(c, http.StatusCreated, res)
}

// failDispatch maps dispatch service errors to HTTP responses.
func (h *Handlers) failDispatch(c *gin.Context, err error) {
	if limitErr, isLimit := services.AsDailyLimitError(err); isLimit {
		c.Header("Retry-After", "86400")
		fail(c, http.StatusTooManyRequests, ErrCodeDailyLimit, limitErr.Error())
		return
	}
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
	case errors.Is(err, services.ErrAllRecipientsBlocked):
		fail(c, http.StatusUnprocessableEntity, ErrCodeAllBlocked, "all recipients are blocked")
	case errors.Is(err, services.ErrNoRecipients),
		errors.Is(err, services.ErrTooManyRecipients),
		errors.Is(err, services.ErrEmptyBody):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeDispatchFailed, err.Error())
	}
}

// ListBulkMessages godoc
// @ID          listBulkMessages
// @Summary     List bulk message jobs (paginated)
// @Description Returns a page of the organization's jobs, newest first.
// @Tags        BulkMessages
// @Produce     json
//
// @Param       id         path   string  true  "Organization ID"  example(org-acme)
// @Param       page       query  int     false "Page number"      minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"   minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListJobsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /organizations/{id}/bulk-messages [get]
func (h *Handlers) ListBulkMessages(c *gin.Context) {
	org := organizationID(c)
	page, pageSize := clampPagination(c)

	items, total, err := h.dispatchSvc.ListJobsPage(c.Request.Context(), org, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListJobsResponse{
		Jobs: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetBulkMessage godoc
// @ID          getBulkMessage
// @Summary     Get one bulk message job
// @Description Returns the job with its per-recipient delivery rows.
// @Tags        BulkMessages
// @Produce     json
//
// @Param       id     path  string  true  "Organization ID"  example(org-acme)
// @Param       jobID  path  string  true  "Job ID (UUID)"    format(uuid)
//
// @Success     200  {object} handlers.JobDetailResponse
// @Failure     404  {object} handlers.ErrorResponse "Job not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /organizations/{id}/bulk-messages/{jobID} [get]
func (h *Handlers) GetBulkMessage(c *gin.Context) {
	org := organizationID(c)
	jobID := c.Param("jobID")

	job, recs, err := h.dispatchSvc.GetJob(c.Request.Context(), org, jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "job not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, JobDetailResponse{Job: *job, Recipients: recs})
}
