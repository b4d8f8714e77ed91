// Package services – RateLimitCounter
//
// This file implements the daily send-volume cap. The authoritative count is
// always the recipient-count sum over today's jobs in the relational store;
// Redis only provides a fast-path counter that can catch commits recorded
// after the authoritative read. The cache can raise the working count but
// never lower it, and its unavailability degrades the limiter to
// authoritative-only counting rather than failing the call.
//
// Known race: CheckAndReserve does not reserve capacity. Two concurrent
// dispatches for the same organization can both pass the check and together
// overshoot the cap before either commits. The overshoot is transient and
// self-correcting because jobs are always recorded and the next check reads
// the authoritative sum. The cap is a soft limit and the window is not
// closed with a lock.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
)

// DefaultDailyRecipientCap is the number of recipient slots an organization
// may consume per UTC day. A repeat send to the same recipient on the same
// day still consumes a slot: the cap is on send volume, not distinct
// recipients.
const DefaultDailyRecipientCap = 50

// RateLimitCache is the narrow counter-store surface the limiter needs.
// Implementations must treat an absent key as (0, false, nil).
type RateLimitCache interface {
	GetInt64(key string) (int64, bool, error)
	IncrBy(key string, n int64, ttl time.Duration) error
}

// CommitResult reports which stores recorded a committed send volume.
type CommitResult int

const (
	// CommitCached means the fast-path counter was incremented.
	CommitCached CommitResult = iota
	// CommitAuthoritativeOnly means the cache was absent or unreachable and
	// only the job ledger (written by the dispatcher) carries the volume.
	CommitAuthoritativeOnly
)

// RateLimitCounter enforces the per-organization daily recipient cap.
type RateLimitCounter struct {
	// DB is the handle for the authoritative day-window sum.
	DB *gorm.DB
	// Cache is the optional fast-path counter store. May be nil.
	Cache RateLimitCache
	// Cap overrides DefaultDailyRecipientCap when > 0.
	Cap int

	// Now is a clock seam for tests; defaults to time.Now.
	Now func() time.Time
}

// Max returns the effective daily cap.
func (r *RateLimitCounter) Max() int {
	if r.Cap > 0 {
		return r.Cap
	}
	return DefaultDailyRecipientCap
}

// CheckAndReserve verifies that requestedCount more recipient slots fit under
// today's cap for the organization. Despite the name it does not hold
// capacity; see the package comment for the accepted race.
//
// Returns nil when the send may proceed, a *DailyLimitError carrying the
// remaining budget when it may not, and a raw error only when the
// authoritative store is unreachable (the single source of truth).
func (r *RateLimitCounter) CheckAndReserve(ctx context.Context, organizationID string, requestedCount int) error {
	from, to := r.dayWindow()

	authoritative, err := repo.SumRecipientCount(ctx, r.DB, organizationID, from, to)
	if err != nil {
		return err
	}

	working := authoritative
	if r.Cache != nil {
		cached, ok, cerr := r.Cache.GetInt64(r.key(organizationID, from))
		switch {
		case cerr != nil:
			// Fail open on the cache: the authoritative count stands alone.
			log.Warn().Err(cerr).Str("organization_id", organizationID).
				Msg("rate limit cache read failed, using authoritative count only")
		case ok && cached > working:
			working = cached
		}
	}

	max := int64(r.Max())
	if working+int64(requestedCount) > max {
		remaining := max - working
		if remaining < 0 {
			remaining = 0
		}
		return &DailyLimitError{Remaining: int(remaining)}
	}
	return nil
}

// Commit records actualCount sent recipients on the fast-path counter and
// aligns its expiry with the next UTC midnight. Cache failure is swallowed by
// design: the job ledger already carries the volume, so the worst case is a
// check that briefly under-counts.
func (r *RateLimitCounter) Commit(ctx context.Context, organizationID string, actualCount int) CommitResult {
	if r.Cache == nil || actualCount <= 0 {
		return CommitAuthoritativeOnly
	}
	from, to := r.dayWindow()
	ttl := to.Sub(r.now())
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := r.Cache.IncrBy(r.key(organizationID, from), int64(actualCount), ttl); err != nil {
		log.Warn().Err(err).Str("organization_id", organizationID).Int("count", actualCount).
			Msg("rate limit cache commit failed, counting on authoritative store")
		return CommitAuthoritativeOnly
	}
	return CommitCached
}

// key builds the cache key for an organization's daily counter.
func (r *RateLimitCounter) key(organizationID string, day time.Time) string {
	return fmt.Sprintf("rateLimit:%s:%s", organizationID, day.Format("2006-01-02"))
}

// dayWindow returns [start, end) of the current UTC calendar day.
func (r *RateLimitCounter) dayWindow() (time.Time, time.Time) {
	now := r.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (r *RateLimitCounter) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}
