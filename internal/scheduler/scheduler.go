package scheduler

import (
	"sync"
	"time"

	"cuadrante-bot/internal/service"

	"github.com/sirupsen/logrus"
)

// Scheduler periodically recomputes the open-period balances of every
// user, so balances stay fresh even for users who stopped logging time.
type Scheduler struct {
	balances *service.BalanceService
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
	logger   *logrus.Logger
}

func New(balances *service.BalanceService, interval time.Duration) *Scheduler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Scheduler{
		balances: balances,
		interval: interval,
		stop:     make(chan struct{}),
		logger:   logger,
	}
}

// Start launches the sweep loop. The first sweep runs immediately so a
// freshly restarted bot does not wait a full interval to catch up.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.logger.WithField("interval", s.interval.String()).Info("Balance sweep scheduler started")
		s.runSweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runSweep()
			case <-s.stop:
				s.logger.Info("Balance sweep scheduler stopped")
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) runSweep() {
	processed, failures := s.balances.RecalculateAllUsers(service.TriggerDailySweep)

	if len(failures) > 0 {
		s.logger.WithFields(logrus.Fields{
			"processed": processed,
			"failed":    len(failures),
		}).Warn("Balance sweep finished with failures")
		return
	}

	s.logger.WithField("processed", processed).Info("Balance sweep finished")
}
