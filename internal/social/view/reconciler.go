// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"log/slog"
	"time"
)

// Reconciler periodically repairs drifted view counters.
type Reconciler struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewReconciler constructs a [Reconciler]. A non-positive interval disables it.
func NewReconciler(service *Service, interval time.Duration, logger *slog.Logger) *Reconciler {
	return &Reconciler{service: service, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, running one pass per interval.
func (reconciler *Reconciler) Run(ctx context.Context) {
	if reconciler.interval <= 0 {
		reconciler.logger.Info("view_reconciler_disabled")
		return
	}

	ticker := time.NewTicker(reconciler.interval)
	defer ticker.Stop()

	reconciler.logger.Info("view_reconciler_started", slog.Duration("interval", reconciler.interval))

	for {
		select {
		case <-ctx.Done():
			reconciler.logger.Info("view_reconciler_stopped")
			return
		case <-ticker.C:
			reconciler.pass(ctx)
		}
	}
}

func (reconciler *Reconciler) pass(ctx context.Context) {
	started := time.Now()

	result, err := reconciler.service.ReconcileAll(ctx)
	if err != nil {
		reconciler.logger.Error("view_reconcile_failed", slog.Any("error", err))
		return
	}

	level := slog.LevelDebug
	if result.Repaired > 0 {
		level = slog.LevelWarn
	}
	reconciler.logger.Log(ctx, level, "view_reconcile_completed",
		slog.Int64("repaired", result.Repaired),
		slog.Duration("took", time.Since(started)),
	)
}
