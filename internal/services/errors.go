// Package services defines the business logic for bulk outreach: templates,
// recipient blocks, daily rate limiting, personalization, and dispatch. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import (
	"errors"
	"fmt"
)

// Batch-level dispatch preconditions. All of these are evaluated before a job
// row is created; a dispatch that fails with one of them leaves no trace in
// the ledger.
var (
	// ErrTemplateNotFound indicates that the referenced template does not
	// exist or belongs to a different organization (indistinguishable on
	// purpose).
	ErrTemplateNotFound = errors.New("template not found")

	// ErrAllRecipientsBlocked is returned when block filtering empties the
	// recipient list.
	ErrAllRecipientsBlocked = errors.New("all recipients have blocked this organization")

	// ErrNoRecipients is returned when a dispatch request carries no
	// recipient ids after deduplication.
	ErrNoRecipients = errors.New("no recipients")

	// ErrTooManyRecipients is returned when a single request exceeds the
	// per-request recipient cap.
	ErrTooManyRecipients = errors.New("too many recipients in one request")

	// ErrEmptyBody is returned when neither a literal body nor a template
	// provides message content.
	ErrEmptyBody = errors.New("message body is empty")
)

// Block registry errors.
var (
	// ErrAlreadyBlocked is returned when a block row for the
	// (recipient, organization) pair already exists. Callers see an explicit
	// conflict rather than a silent no-op.
	ErrAlreadyBlocked = errors.New("organization already blocked")

	// ErrBlockNotFound is returned by Unblock when no block row existed.
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidBlock is returned by Block when the recipient or organization
	// identifier is blank after trimming.
	ErrInvalidBlock = errors.New("recipient and organization ids are required")
)

// Template validation errors.
var (
	// ErrInvalidTemplate is returned when a template is created or updated
	// without a name or body.
	ErrInvalidTemplate = errors.New("template name and body are required")
)

// Delivery-event errors.
var (
	// ErrDeliveryMessageNotFound indicates no recipient row matches the
	// delivery message id of an inbound event.
	ErrDeliveryMessageNotFound = errors.New("delivery message not found")

	// ErrInvalidDeliveryEvent is returned for unknown event kinds or
	// transitions that would move a recipient row backwards.
	ErrInvalidDeliveryEvent = errors.New("invalid delivery event")
)

// DailyLimitError reports that a dispatch would push the organization past its
// daily recipient cap. Remaining is the number of recipient slots still
// available today (never negative).
type DailyLimitError struct {
	Remaining int
}

// Error implements the error interface.
func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily recipient limit exceeded: %d remaining", e.Remaining)
}

// AsDailyLimitError unwraps err into a *DailyLimitError if it is one.
func AsDailyLimitError(err error) (*DailyLimitError, bool) {
	var dl *DailyLimitError
	if errors.As(err, &dl) {
		return dl, true
	}
	return nil, false
}
