package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"arenadb/pkg/logger"
	"arenadb/pkg/models"
	"arenadb/pkg/store"
)

const millisPerDay = 24 * 60 * 60 * 1000

// autoPayload is the scheduler-assembled webhook envelope. It mirrors the
// manual export envelope but scopes threads to the backup window.
type autoPayload struct {
	TesterID    string                `json:"testerId"`
	BackupTime  int64                 `json:"backupTime"`
	PeriodStart int64                 `json:"periodStart"`
	PeriodEnd   int64                 `json:"periodEnd"`
	ThreadCount int                   `json:"threadCount"`
	Threads     []models.ThreadRecord `json:"threads"`
}

// Scheduler periodically checks whether a backup is due and uploads the
// threads created since the last one. Upload failures are logged and retried
// on the next tick; they never interrupt the serving path.
type Scheduler struct {
	Store     *store.Store
	Forwarder *Forwarder
	Cron      string
}

// Start validates the cron expression and launches the scheduler goroutine.
// Returns a cancel func.
func (s *Scheduler) Start(ctx context.Context) (context.CancelFunc, error) {
	if s.Forwarder == nil || s.Forwarder.URL == "" {
		logger.Info("auto_backup_disabled")
		return func() {}, nil
	}
	cronExpr := s.Cron
	if cronExpr == "" {
		cronExpr = "0 * * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("backup_invalid_cron", "cron", s.Cron)
		return nil, fmt.Errorf("invalid backup cron expression: %s", s.Cron)
	}

	ctx2, cancel := context.WithCancel(ctx)
	go s.runScheduler(ctx2, cronExpr)
	logger.Info("auto_backup_started", "cron", cronExpr)
	return cancel, nil
}

// runScheduler uses gronx to compute the next tick for the configured cron
// expression and sleeps until that time.
func (s *Scheduler) runScheduler(ctx context.Context, cronExpr string) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("backup_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("backup_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
			if err := s.runOnce(ctx); err != nil {
				logger.Error("backup_run_error", "error", err)
			}
		case <-ctx.Done():
			logger.Info("backup_scheduler_stopping")
			return
		}
	}
}

// runOnce performs one due-check and, when the interval has elapsed, uploads
// all threads created since the previous backup.
func (s *Scheduler) runOnce(ctx context.Context) error {
	cfg := s.Store.Config()
	now := time.Now().UnixMilli()
	intervalMs := int64(cfg.BackupIntervalDays) * millisPerDay
	if cfg.LastBackupTime > 0 && now-cfg.LastBackupTime < intervalMs {
		return nil
	}

	threads := s.Store.ThreadsSince(cfg.LastBackupTime)
	if len(threads) == 0 {
		// nothing new; advance the marker so the next window starts here
		_, err := s.Store.UpdateConfig(func(c *models.ArenaConfig) { c.LastBackupTime = now })
		return err
	}

	payload := autoPayload{
		TesterID:    cfg.TesterID,
		BackupTime:  now,
		PeriodStart: cfg.LastBackupTime,
		PeriodEnd:   now,
		ThreadCount: len(threads),
		Threads:     threads,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := s.Forwarder.Forward(ctx, body); err != nil {
		return err
	}

	if _, err := s.Store.UpdateConfig(func(c *models.ArenaConfig) { c.LastBackupTime = now }); err != nil {
		return err
	}
	logger.Info("auto_backup_uploaded", "threads", len(threads))
	return nil
}
