package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/store"
)

// HousekeepingService sweeps expired rows out of the tables that accumulate
// short-lived records: login challenges, one-time codes and team invitations.
// Expired rows are already invisible to reads, the sweep just reclaims them.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService builds the sweeper. A non-positive interval falls
// back to 10 minutes.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. The first sweep runs right away so a
// long interval does not delay reclaiming rows after a restart.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop shuts the worker down and waits for an in-flight sweep to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup runs one sweep over every table. Sweeps are independent, a failure
// in one table never blocks the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()

	sweeps := []struct {
		table string
		run   func(context.Context) error
	}{
		{"challenges", s.Store.Challenges().DeleteExpiredChallenges},
		{"otp_codes", s.Store.OTPCodes().DeleteExpiredOTPCodes},
		{"invitations", s.Store.Invitations().DeleteExpiredInvitations},
	}

	swept := 0
	for _, sw := range sweeps {
		if err := sw.run(ctx); err != nil {
			s.Logger.Error("housekeeping sweep failed", "table", sw.table, "error", err)
			continue
		}
		swept++
	}
	s.Logger.Info("housekeeping pass complete", "swept", swept, "tables", len(sweeps))
}
