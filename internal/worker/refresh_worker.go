package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"decision-service/internal/repository"
	"decision-service/internal/services"

	"github.com/robfig/cron/v3"
)

// RefreshWorker regenerates recommendations for every active farm on a cron
// schedule, keeping stored decision lists aligned with fresh weather and
// market state.
type RefreshWorker struct {
	cron     *cron.Cron
	farmRepo *repository.FarmRepository
	service  *services.DecisionService
	spec     string
}

func NewRefreshWorker(farmRepo *repository.FarmRepository, service *services.DecisionService, spec string) *RefreshWorker {
	return &RefreshWorker{
		cron:     cron.New(),
		farmRepo: farmRepo,
		service:  service,
		spec:     spec,
	}
}

// Start registers the schedule and begins running.
func (w *RefreshWorker) Start() error {
	if _, err := w.cron.AddFunc(w.spec, w.RefreshAll); err != nil {
		return fmt.Errorf("invalid refresh cron spec %q: %w", w.spec, err)
	}
	w.cron.Start()
	slog.Info("Recommendation refresh worker started", "cron", w.spec)
	return nil
}

// Stop halts the schedule, waiting for a running refresh to finish.
func (w *RefreshWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	slog.Info("Recommendation refresh worker stopped")
}

// RefreshAll regenerates recommendations for every active farm. One farm's
// failure never aborts the rest.
func (w *RefreshWorker) RefreshAll() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("RefreshAll: recovered from panic", "panic", r)
		}
	}()

	started := time.Now()
	ctx := context.Background()

	farmIDs, err := w.farmRepo.ListActiveFarmIDs(ctx)
	if err != nil {
		slog.Error("Failed to list active farms for refresh", "error", err)
		return
	}

	succeeded := 0
	failed := 0
	for _, farmID := range farmIDs {
		if _, err := w.service.GenerateForFarm(ctx, farmID); err != nil {
			failed++
			slog.Warn("Recommendation refresh failed for farm",
				"farm_id", farmID, "error", err)
			continue
		}
		succeeded++
	}

	slog.Info("Recommendation refresh pass complete",
		"farm_count", len(farmIDs),
		"succeeded", succeeded,
		"failed", failed,
		"elapsed_ms", time.Since(started).Milliseconds())
}
