// Package jobs provides scheduled background tasks.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision, so
// schedules take six fields.
//
// # Available Jobs
//
// IndexAuditJob reads every record kind in one transaction, checks each
// secondary index against the records and logs every violation. The default
// schedule is DefaultAuditSchedule; AUDIT_SCHEDULE overrides it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(auditHandler, cfg.AuditSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed audit is logged and retried at the next tick. An invalid schedule
// fails StartAll.
package jobs
