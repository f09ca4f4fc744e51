package jobs

import (
	"fmt"
	"log/slog"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	indexAuditJob *IndexAuditJob
}

func NewJobManager(
	auditHandler queries.AuditIndexesQueryHandler,
	auditSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		indexAuditJob: NewIndexAuditJob(auditHandler, auditSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.indexAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start index audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.indexAuditJob.Stop()
}
