package services

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSnapshotScheduler keeps the per-user dashboard snapshot caches warm.
func (s *StatsService) StartSnapshotScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 5 minutes: recompute caches invalidated by new or deleted rounds
	_, _ = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(s.RefreshSnapshotCaches),
	)
}
