package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/config"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/repository/mongodb"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/repository/sheets"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/service/advisor"
)

// Scheduler manages the recurring advisor tick and the daily snapshot export.
type Scheduler struct {
	cron       *cron.Cron
	advisorSvc *advisor.Service
	repo       mongodb.Repository
	sheetsRepo sheets.Repository
	cfg        config.Config
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. The sheets repository is
// optional; without it snapshots only go to MongoDB.
func NewScheduler(cfg config.Config, advisorSvc *advisor.Service, repo mongodb.Repository, sheetsRepo sheets.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:       cron.New(),
		advisorSvc: advisorSvc,
		repo:       repo,
		sheetsRepo: sheetsRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("tick", s.cfg.Advisor.TickSchedule),
		zap.String("snapshot", s.cfg.Snapshot.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Advisor.TickSchedule, s.runTick); err != nil {
		s.logger.Error("failed to schedule advisor tick", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.exportDailySnapshot); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if advice := s.advisorSvc.RunCycle(ctx); advice != nil {
		s.advisorSvc.ShowHint(*advice)
		s.logger.Info("coaching hint surfaced", zap.String("hint", advice.Key))
	}
}

func (s *Scheduler) exportDailySnapshot() {
	s.logger.Info("exporting daily snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snap := s.advisorSvc.Snapshot()

	if err := s.repo.SaveDailySnapshot(ctx, snap); err != nil {
		s.logger.Error("failed to persist daily snapshot", zap.Error(err))
	}

	if s.sheetsRepo == nil {
		return
	}
	if err := s.sheetsRepo.AppendDailySnapshot(ctx, snap); err != nil {
		s.logger.Error("failed to export daily snapshot to sheet", zap.Error(err))
	} else {
		s.logger.Info("daily snapshot exported")
	}
}
