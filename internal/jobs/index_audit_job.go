package jobs

import (
	"context"
	"log/slog"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultAuditSchedule runs the audit once a minute, at second zero.
const DefaultAuditSchedule = "0 * * * * *"

type auditHandler interface {
	Handle(ctx context.Context, query queries.AuditIndexesQuery) (queries.AuditIndexesQueryResponse, error)
}

// IndexAuditJob periodically checks every secondary index against the stored
// records and logs each violation it finds.
type IndexAuditJob struct {
	handler  auditHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewIndexAuditJob(handler auditHandler, schedule string, logger *slog.Logger) *IndexAuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	return &IndexAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "index_audit_job"),
	}
}

// Start fails when the schedule is not a six-field cron expression.
func (j *IndexAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Index audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit and reports whether the indexes were consistent.
func (j *IndexAuditJob) Run(ctx context.Context) bool {
	resp, err := j.handler.Handle(ctx, queries.NewAuditIndexesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Index audit failed", "error", err)
		return false
	}

	for _, v := range resp.Violations {
		j.logger.WarnContext(ctx, "Index violation",
			"kind", v.Kind,
			"family", v.Family,
			"bucket", v.Bucket,
			"key", v.Key,
			"problem", v.Problem,
		)
	}
	if len(resp.Violations) > 0 {
		j.logger.ErrorContext(ctx, "Index audit found violations",
			"records", resp.Records, "violations", len(resp.Violations))
		return false
	}

	j.logger.DebugContext(ctx, "Index audit passed", "records", resp.Records)
	return true
}

// Stop waits for a running audit to finish.
func (j *IndexAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Index audit job stopped")
}
