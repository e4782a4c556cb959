package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/services"
)

// Scheduler runs the recurring maintenance tasks: periodic store snapshots
// and the expired job listing sweep.
type Scheduler struct {
	backupSvc services.BackupServiceProvider
	jobSvc    services.JobServiceProvider
	cron      *cron.Cron
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(backupSvc services.BackupServiceProvider, jobSvc services.JobServiceProvider) *Scheduler {
	return &Scheduler{
		backupSvc: backupSvc,
		jobSvc:    jobSvc,
		cron:      cron.New(),
	}
}

// Start registers the maintenance jobs and begins the cron loop.
// retentionDays <= 0 disables the job sweep.
func (s *Scheduler) Start(backupSchedule, sweepSchedule string, retentionDays int) error {
	if _, err := s.cron.AddFunc(backupSchedule, s.runSnapshot); err != nil {
		return err
	}

	if retentionDays > 0 {
		retention := time.Duration(retentionDays) * 24 * time.Hour
		if _, err := s.cron.AddFunc(sweepSchedule, func() { s.runSweep(retention) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.Info().Str("backup_schedule", backupSchedule).Str("sweep_schedule", sweepSchedule).Msg("Background scheduler started")
	return nil
}

// Stop halts the cron loop, waiting for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Background scheduler stopped")
}

func (s *Scheduler) runSnapshot() {
	path, err := s.backupSvc.CreateSnapshot()
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: Store snapshot failed")
		return
	}
	log.Info().Str("path", path).Msg("Scheduler: Store snapshot written")
}

func (s *Scheduler) runSweep(retention time.Duration) {
	pruned, err := s.jobSvc.PruneExpired(retention)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: Job retention sweep failed")
		return
	}
	if pruned > 0 {
		log.Info().Int("pruned", pruned).Msg("Scheduler: Expired job listings removed")
	}
}
