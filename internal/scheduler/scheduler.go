package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/config"
	"github.com/mahameru/inventory/internal/service/inventory"
	"github.com/mahameru/inventory/pkg/clients/notify"
)

// Scheduler runs the periodic below-ROP stock scan.
type Scheduler struct {
	cron     *cron.Cron
	invSvc   *inventory.Service
	notifier notify.Client
	cfg      config.AlertsConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil,
// in which case alerts are logged only.
func NewScheduler(cfg config.AlertsConfig, invSvc *inventory.Service, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		invSvc:   invSvc,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the stock scan with the configured cron expression and
// starts the cron runner.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.scanLowStock); err != nil {
		s.logger.Error("failed to schedule low stock scan", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the cron runner.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) scanLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	items, err := s.invSvc.LowStock(ctx)
	if err != nil {
		s.logger.Error("low stock scan failed", zap.Error(err))
		return
	}

	s.logger.Info("low stock scan completed", zap.Int("items_below_rop", len(items)))

	for _, item := range items {
		s.logger.Warn("material at or below reorder point",
			zap.String("code", item.Material.Code),
			zap.String("name", item.Material.Name),
			zap.Int("current_stock", item.Material.CurrentStock),
			zap.Int("reorder_point", item.ReorderPoint))

		if s.notifier == nil {
			continue
		}

		alert := notify.LowStockAlert{
			MaterialCode: item.Material.Code,
			MaterialName: item.Material.Name,
			Unit:         item.Material.Unit,
			CurrentStock: item.Material.CurrentStock,
			ReorderPoint: item.ReorderPoint,
		}
		if err := s.notifier.SendLowStockAlert(ctx, alert); err != nil {
			s.logger.Error("failed to deliver low stock alert",
				zap.String("code", item.Material.Code), zap.Error(err))
		}
	}
}
