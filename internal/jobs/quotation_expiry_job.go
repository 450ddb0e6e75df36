package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// QuotationExpiryJobName is the name of the quotation expiry job
const QuotationExpiryJobName = "quotation_expiry"

// DefaultExpiryTimeout bounds a single expiry run
const DefaultExpiryTimeout = 5 * time.Minute

// QuotationExpiryService defines the interface for expiring quotations.
// This interface allows the job to call the service without importing the
// service package directly.
type QuotationExpiryService interface {
	// ExpireQuotations cancels active quotations whose validity window has
	// passed. Returns the number of cases moved.
	ExpireQuotations(ctx context.Context) (int, error)
}

// QuotationExpiryJob cancels quotations that have run past their validity
// date. Each transition is recorded in the case status history like any
// user-initiated change.
type QuotationExpiryJob struct {
	service QuotationExpiryService
	logger  *zap.Logger
	timeout time.Duration
}

// NewQuotationExpiryJob creates a new quotation expiry job.
// The timeout controls how long one run is allowed to take.
func NewQuotationExpiryJob(service QuotationExpiryService, logger *zap.Logger, timeout time.Duration) *QuotationExpiryJob {
	if timeout <= 0 {
		timeout = DefaultExpiryTimeout
	}
	return &QuotationExpiryJob{
		service: service,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the quotation expiry job.
// This is called by the scheduler according to the cron expression.
func (j *QuotationExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting quotation expiry job")

	expired, err := j.service.ExpireQuotations(ctx)
	if err != nil {
		j.logger.Error("quotation expiry job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("quotation expiry job completed",
		zap.Int("expired", expired),
		zap.Duration("duration", time.Since(start)))
}

// RegisterQuotationExpiryJob registers the quotation expiry job with the
// scheduler. The cronExpr should be a valid cron expression, e.g.
// "0 0 2 * * *" for 02:00 every night.
func RegisterQuotationExpiryJob(scheduler *Scheduler, service QuotationExpiryService, logger *zap.Logger, cronExpr string) error {
	job := NewQuotationExpiryJob(service, logger, DefaultExpiryTimeout)
	return scheduler.AddJob(QuotationExpiryJobName, cronExpr, job.Run)
}
