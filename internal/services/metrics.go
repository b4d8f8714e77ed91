// Package services – dispatch metrics
//
// Prometheus collectors for bulk dispatch outcomes. Label cardinality is kept
// to the small, closed outcome set so the counters stay cheap to aggregate.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// dispatchJobs counts dispatch invocations that created a job.
	dispatchJobs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_dispatch_jobs_total",
			Help: "Total number of bulk send jobs created.",
		},
	)

	// dispatchRecipients counts per-recipient outcomes across all jobs.
	// outcome is one of: sent, failed, blocked.
	dispatchRecipients = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_dispatch_recipients_total",
			Help: "Total number of bulk send recipients by outcome.",
		},
		[]string{"outcome"},
	)

	// dispatchRejected counts dispatches rejected before job creation.
	// reason is one of: daily_limit, all_blocked, template_not_found.
	dispatchRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_dispatch_rejected_total",
			Help: "Total number of dispatch requests rejected by a batch-level precondition.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(dispatchJobs, dispatchRecipients, dispatchRejected)
}
