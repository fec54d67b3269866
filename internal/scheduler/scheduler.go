// Package scheduler runs the periodic jobs: autosave of a dirty ledger and
// the rolling backup snapshot.
package scheduler

import (
	"sync"

	"github.com/roylee0704/gron"

	"cft/internal/providers"
	"cft/internal/services"
	"cft/internal/structures"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	ledger services.LedgerServiceInterface
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		// Writes persist inline, so the autosave only matters after a failed
		// inline save left the ledger dirty.
		if !s.ledger.Dirty() {
			return
		}
		if err := s.ledger.Persist(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting ledger: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted dirty ledger state")
	})

	s.cron.AddFunc(gron.Every(s.config.Persistence.BackupInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.ledger.Backup(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while writing backup snapshot: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Backup snapshot written")
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.ledger.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting ledger state...")
	if err := s.ledger.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting ledger: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, ledger services.LedgerServiceInterface) SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		ledger: ledger,
	}
}
