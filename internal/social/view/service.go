// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

// # Service Layer

// Service records views and repairs view counters.
type Service struct {
	repo        Repository
	cache       SeenCache
	videoExists validate.ExistsFunc
}

// NewService constructs a view [Service]. cache may be nil.
func NewService(repo Repository, cache SeenCache, videoExists validate.ExistsFunc) *Service {
	return &Service{repo: repo, cache: cache, videoExists: videoExists}
}

/*
RecordView counts a view of the video for (viewer, session) at most once.

Description: The identifier is validated first. A seen-cache hit answers
"not counted" without touching PostgreSQL. Otherwise the video must exist and
the ledger decides; the cache is written only after the ledger answered.
Cache failures are logged and ignored.

Parameters:
  - ctx: context.Context
  - rawVideoID: string (Unvalidated path parameter)
  - viewerID: string ("" for anonymous)
  - sessionID: string (Session digest)

Returns:
  - Result: {counted}
  - error: INVALID_IDENTIFIER, NOT_FOUND, VALIDATION_ERROR or storage failures
*/
func (service *Service) RecordView(ctx context.Context, rawVideoID, viewerID, sessionID string) (Result, error) {
	videoID, err := validate.Identifier("video_id", rawVideoID)
	if err != nil {
		return Result{}, err
	}
	if sessionID == "" {
		return Result{}, apperr.ValidationError("Viewing session could not be identified",
			apperr.FieldError{Field: "session", Message: "This field is required"})
	}

	key := Key{VideoID: videoID, ViewerID: viewerID, SessionID: sessionID}
	logger := ctxutil.GetLogger(ctx)

	// 1. Fast path
	if service.cache != nil {
		seen, err := service.cache.Seen(ctx, key)
		switch {
		case err != nil:
			service.degraded(ctx, logger, "seen", err)
		case seen:
			return Result{Counted: false}, nil
		}
	}

	// 2. Ledger
	if _, err := validate.Existing(ctx, "video_id", "Video", videoID, service.videoExists); err != nil {
		return Result{}, err
	}

	counted, err := service.repo.Record(ctx, key)
	if err != nil {
		return Result{}, err
	}

	// 3. Remember only what the ledger confirmed
	if service.cache != nil {
		if err := service.cache.Remember(ctx, key); err != nil {
			service.degraded(ctx, logger, "remember", err)
		}
	}

	if counted {
		logger.DebugContext(ctx, "view_counted",
			slog.String("video_id", videoID),
			slog.Bool("anonymous", viewerID == ""),
		)
	}

	return Result{Counted: counted}, nil
}

/*
Reconcile resets one video's counter to its number of view records.

Parameters:
  - ctx: context.Context
  - rawVideoID: string

Returns:
  - ReconcileResult: Corrected counter
  - error: INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) Reconcile(ctx context.Context, rawVideoID string) (ReconcileResult, error) {
	videoID, err := validate.Identifier("video_id", rawVideoID)
	if err != nil {
		return ReconcileResult{}, err
	}

	count, changed, err := service.repo.Reconcile(ctx, videoID)
	if err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{VideoID: videoID, ViewCount: count}
	if changed {
		result.Repaired = 1
		ctxutil.GetLogger(ctx).WarnContext(ctx, "view_count_repaired",
			slog.String("video_id", videoID),
			slog.Int64("view_count", count),
		)
	}
	return result, nil
}

// ReconcileAll repairs every drifted counter.
func (service *Service) ReconcileAll(ctx context.Context) (ReconcileResult, error) {
	repaired, err := service.repo.ReconcileAll(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}
	return ReconcileResult{Repaired: repaired}, nil
}

// degraded logs a cache failure. An open breaker is expected and logged quietly.
func (service *Service) degraded(ctx context.Context, logger *slog.Logger, op string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		level = slog.LevelDebug
	}
	logger.Log(ctx, level, "view_cache_degraded",
		slog.String("op", op),
		slog.Any("error", err),
	)
}
