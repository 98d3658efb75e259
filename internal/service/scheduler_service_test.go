package service

import (
	"testing"
	"time"
)

func TestSchedulerLifecycle(t *testing.T) {
	t.Parallel()
	s := NewSchedulerService(time.UTC)

	id, err := s.ScheduleEveryMinute(func() {})
	if err != nil {
		t.Fatalf("ScheduleEveryMinute: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero entry id")
	}

	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
