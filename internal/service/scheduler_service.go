package service

import (
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs. Firings of the same job are
// serialized: a job still running when its next trigger arrives makes
// that trigger skip instead of overlapping. A panicking job is
// recovered so the schedule keeps firing on later minutes.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithChain(
				cron.Recover(cron.DiscardLogger),
				cron.SkipIfStillRunning(cron.DiscardLogger),
			),
		),
	}
}

// ScheduleEveryMinute registers a job fired at second zero of every
// wall-clock minute, independent of request traffic.
func (s *SchedulerService) ScheduleEveryMinute(job func()) (cron.EntryID, error) {
	return s.cron.AddFunc("0 * * * * *", job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop stops accepting new triggers and blocks until the running job,
// if any, returns.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
