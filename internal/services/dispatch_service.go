// Package services – DispatchService
//
// This file implements the bulk outreach orchestrator. One Dispatch call
// validates and deduplicates the recipient list, checks the daily volume cap,
// filters blocked recipients, creates the job ledger row, fans the surviving
// recipients out to a bounded worker pool that sends one message each through
// the delivery collaborator, records a per-recipient outcome row after every
// attempt, recomputes the job counters from those rows, and finally commits
// the actual send volume to the rate-limit counter.
//
// A single recipient failure never aborts the batch: the per-recipient send
// returns a tagged outcome rather than an error, so a job in which every send
// failed still completes with failedCount == recipientCount. Only the four
// batch-level preconditions (template missing, daily limit, all blocked,
// invalid input) surface as errors, and none of them leave a job row behind.
//
// Observability: public methods are OpenTelemetry-instrumented; outcome
// counters are exported via Prometheus (see metrics.go).
package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
)

// Messenger is the external delivery collaborator: it finds or creates the
// one-to-one conversation between the organization and the recipient and
// posts the message, returning the transport-assigned message id.
type Messenger interface {
	SendDirectMessage(ctx context.Context, organizationID, recipientID, subject, content string) (messageID string, err error)
}

// ProfileStore fetches recipient profiles for personalization variables.
type ProfileStore interface {
	GetProfile(ctx context.Context, recipientID string) (*domain.Candidate, error)
}

// DispatchService coordinates bulk message dispatch.
type DispatchService struct {
	DB        *gorm.DB
	Templates *TemplateService
	Blocks    *BlockRegistry
	RateLimit *RateLimitCounter
	Messenger Messenger
	Profiles  ProfileStore

	// Workers bounds per-recipient send concurrency. Values <= 0 mean
	// sequential processing.
	Workers int
	// SendTimeout caps one recipient's profile fetch + delivery so a slow
	// recipient cannot stall the batch. Zero disables the per-send timeout.
	SendTimeout time.Duration
	// MaxRecipients caps a single request. Defaults to the daily cap so one
	// request can never exceed a fresh day's budget on its own.
	MaxRecipients int
}

// DispatchInput is the payload of one bulk send request.
type DispatchInput struct {
	RecipientIDs []string
	// Body is the literal message body; ignored when TemplateID resolves.
	Body string
	// TemplateID references an organization-owned template. Its body and
	// subject override the literal inputs.
	TemplateID string
	Subject    string
	// Personalize enables placeholder substitution per recipient.
	Personalize bool
}

// RecipientFailure describes one failed per-recipient send.
type RecipientFailure struct {
	RecipientID string `json:"recipient_id"`
	Reason      string `json:"reason"`
}

// DispatchResult summarizes one completed dispatch.
type DispatchResult struct {
	JobID           string             `json:"job_id"`
	TotalRecipients int                `json:"total_recipients"`
	BlockedCount    int                `json:"blocked_count"`
	SuccessCount    int                `json:"success_count"`
	FailedCount     int                `json:"failed_count"`
	Failures        []RecipientFailure `json:"failures,omitempty"`
	// RateCommit reports whether the fast-path counter recorded the volume
	// or the ledger alone carries it (cache unavailable).
	RateCommit CommitResult `json:"-"`
}

// sendOutcome is the tagged result of one per-recipient attempt.
type sendOutcome struct {
	recipientID string
	messageID   string
	content     string
	err         error
}

// Dispatch runs the full orchestration for one bulk send. See the file
// comment for the phase breakdown. The returned error is always one of the
// batch-level preconditions or a persistent-store failure; per-recipient
// failures live inside the result.
func (s *DispatchService) Dispatch(ctx context.Context, organizationID string, in DispatchInput) (*DispatchResult, error) {
	tr := otel.Tracer("services/DispatchService")
	ctx, span := tr.Start(ctx, "Dispatch",
		trace.WithAttributes(
			attribute.String("organization.id", organizationID),
			attribute.Int("recipients.requested", len(in.RecipientIDs)),
		),
	)
	defer span.End()

	// Validate + dedupe, preserving request order.
	ids := dedupeIDs(in.RecipientIDs)
	if len(ids) == 0 {
		return nil, ErrNoRecipients
	}
	if max := s.maxRecipients(); len(ids) > max {
		return nil, ErrTooManyRecipients
	}

	// Resolve body/subject, template winning over literals.
	body, subject := strings.TrimSpace(in.Body), strings.TrimSpace(in.Subject)
	var templateID *string
	if in.TemplateID != "" {
		t, err := s.Templates.GetByID(ctx, in.TemplateID, organizationID)
		if err != nil {
			if err == ErrTemplateNotFound {
				dispatchRejected.WithLabelValues("template_not_found").Inc()
			}
			return nil, err
		}
		body = t.Body
		if t.Subject != "" {
			subject = t.Subject
		}
		templateID = &t.ID
	}
	if body == "" {
		return nil, ErrEmptyBody
	}

	// Rate check against the full requested batch; all-or-nothing.
	if err := s.RateLimit.CheckAndReserve(ctx, organizationID, len(ids)); err != nil {
		if _, ok := AsDailyLimitError(err); ok {
			dispatchRejected.WithLabelValues("daily_limit").Inc()
		}
		return nil, err
	}

	// Block filter: one batched lookup, then prune.
	blockedIDs, err := s.Blocks.FilterBlocked(ctx, organizationID, ids)
	if err != nil {
		return nil, err
	}
	working := pruneIDs(ids, blockedIDs)
	if len(blockedIDs) > 0 {
		dispatchRecipients.WithLabelValues("blocked").Add(float64(len(blockedIDs)))
	}
	if len(working) == 0 {
		dispatchRejected.WithLabelValues("all_blocked").Inc()
		return nil, ErrAllRecipientsBlocked
	}

	// The ledger row is created only now, with the post-filter count.
	job, err := repo.CreateJob(ctx, s.DB, organizationID, templateID, subject, working)
	if err != nil {
		return nil, err
	}
	dispatchJobs.Inc()
	span.SetAttributes(
		attribute.String("job.id", job.ID),
		attribute.Int("recipients.working", len(working)),
		attribute.Int("recipients.blocked", len(blockedIDs)),
	)

	outcomes, storeErr := s.fanOut(ctx, job, organizationID, body, subject, in.Personalize, working)
	if storeErr != nil {
		// Outcome rows could not be persisted; the ledger is the source of
		// truth, so this is fatal to the call.
		return nil, storeErr
	}

	// All attempts are recorded; recompute the counters from the rows.
	if err := s.RecomputeCounters(ctx, job.ID, domain.JobStatusCompleted); err != nil {
		return nil, err
	}

	if templateID != nil {
		if err := repo.IncrementTemplateUsage(ctx, s.DB, *templateID); err != nil {
			span.RecordError(err)
		}
	}

	// Commit the actual working-set size, not the requested size.
	commit := s.RateLimit.Commit(ctx, organizationID, len(working))

	res := &DispatchResult{
		JobID:           job.ID,
		TotalRecipients: len(working),
		BlockedCount:    len(blockedIDs),
		RateCommit:      commit,
	}
	for _, o := range outcomes {
		if o.err != nil {
			res.FailedCount++
			res.Failures = append(res.Failures, RecipientFailure{RecipientID: o.recipientID, Reason: o.err.Error()})
		} else {
			res.SuccessCount++
		}
	}
	return res, nil
}

// fanOut runs the per-recipient sends through a bounded worker pool, writing
// an outcome row after each attempt. It returns when every recipient has been
// attempted and recorded; aggregation is safe to run after it returns. The
// second return value carries the first outcome-row persistence failure.
func (s *DispatchService) fanOut(ctx context.Context, job *domain.BulkSendJob, organizationID, body, subject string, personalize bool, working []string) ([]sendOutcome, error) {
	workers := s.Workers
	if workers <= 0 || workers > len(working) {
		workers = len(working)
		if s.Workers <= 0 {
			workers = 1
		}
	}

	queue := make(chan string)
	var (
		mu       sync.Mutex
		outcomes []sendOutcome
		storeErr error
		wg       sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for recipientID := range queue {
				o := s.sendOne(ctx, organizationID, recipientID, body, subject, personalize)

				row := &domain.BulkSendRecipient{
					BulkSendJobID:       job.ID,
					RecipientID:         o.recipientID,
					DeliveryMessageID:   o.messageID,
					PersonalizedContent: o.content,
					Status:              domain.StatusSent,
				}
				if o.err != nil {
					row.Status = domain.StatusFailed
					row.FailedReason = o.err.Error()
					dispatchRecipients.WithLabelValues("failed").Inc()
				} else {
					dispatchRecipients.WithLabelValues("sent").Inc()
				}
				err := repo.CreateRecipient(ctx, s.DB, row)

				mu.Lock()
				outcomes = append(outcomes, o)
				if err != nil && storeErr == nil {
					storeErr = err
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range working {
		queue <- id
	}
	close(queue)
	wg.Wait()

	return outcomes, storeErr
}

// sendOne performs one recipient's profile fetch, rendering, and delivery.
// Failures are folded into the returned outcome, never raised: the batch must
// outlive any individual recipient.
func (s *DispatchService) sendOne(ctx context.Context, organizationID, recipientID, body, subject string, personalize bool) sendOutcome {
	if s.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SendTimeout)
		defer cancel()
	}

	content, subj := body, subject
	if personalize {
		profile, err := s.Profiles.GetProfile(ctx, recipientID)
		if err != nil {
			return sendOutcome{recipientID: recipientID, err: err}
		}
		vars := ProfileVars(profile)
		content = Render(body, vars)
		subj = Render(subject, vars)
	}

	messageID, err := s.Messenger.SendDirectMessage(ctx, organizationID, recipientID, subj, content)
	if err != nil {
		return sendOutcome{recipientID: recipientID, content: content, err: err}
	}
	return sendOutcome{recipientID: recipientID, messageID: messageID, content: content}
}

// RecomputeCounters derives the job's four outcome counters from its
// recipient rows and persists them together with the given job status. The
// counters are cumulative rollups over the forward-only status chain
// (delivered means sent-or-better), so recomputing twice from the same rows
// yields identical values.
func (s *DispatchService) RecomputeCounters(ctx context.Context, jobID, status string) error {
	counts, err := repo.CountRecipientsByStatus(ctx, s.DB, jobID)
	if err != nil {
		return err
	}
	replied := counts[domain.StatusReplied]
	read := replied + counts[domain.StatusRead]
	delivered := read + counts[domain.StatusDelivered] + counts[domain.StatusSent]
	failed := counts[domain.StatusFailed]
	return repo.UpdateJobCounters(ctx, s.DB, jobID, delivered, read, replied, failed, status)
}

// ApplyDeliveryEvent advances the recipient row matching a transport message
// id along the status chain (delivered/read/replied) and re-aggregates the
// owning job's counters. Transitions that would move a row backwards are
// rejected with ErrInvalidDeliveryEvent.
func (s *DispatchService) ApplyDeliveryEvent(ctx context.Context, deliveryMessageID, event string, at time.Time) error {
	tr := otel.Tracer("services/DispatchService")
	ctx, span := tr.Start(ctx, "ApplyDeliveryEvent",
		trace.WithAttributes(
			attribute.String("delivery.message_id", deliveryMessageID),
			attribute.String("delivery.event", event),
		),
	)
	defer span.End()

	switch event {
	case domain.StatusDelivered, domain.StatusRead, domain.StatusReplied:
	default:
		return ErrInvalidDeliveryEvent
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	rec, err := repo.GetRecipientByDeliveryMessageID(ctx, s.DB, deliveryMessageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrDeliveryMessageNotFound
		}
		return err
	}

	if err := repo.AdvanceRecipientStatus(ctx, s.DB, rec.ID, event, at); err != nil {
		if err == gorm.ErrRecordNotFound {
			// Row already at or past the requested status.
			return ErrInvalidDeliveryEvent
		}
		return err
	}

	// Keep the job's rollups in step; the job status is untouched.
	job, err := repo.GetJobByID(ctx, s.DB, rec.BulkSendJobID)
	if err != nil {
		return err
	}
	return s.RecomputeCounters(ctx, job.ID, job.Status)
}

func (s *DispatchService) maxRecipients() int {
	if s.MaxRecipients > 0 {
		return s.MaxRecipients
	}
	if s.RateLimit != nil {
		return s.RateLimit.Max()
	}
	return DefaultDailyRecipientCap
}

// dedupeIDs trims and deduplicates recipient ids, preserving first-seen order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// pruneIDs removes every id in drop from ids, preserving order.
func pruneIDs(ids, drop []string) []string {
	if len(drop) == 0 {
		return ids
	}
	dropSet := make(map[string]struct{}, len(drop))
	for _, id := range drop {
		dropSet[id] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := dropSet[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
