// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/internal/platform/postgres"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed view ledger.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	// ON CONFLICT DO NOTHING returns no row for a duplicate, which separates
	// "already recorded" from every other failure without parsing errors.
	insertViewQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s, %s) DO NOTHING
		RETURNING %s`,
		schema.SocialView.Table,
		schema.SocialView.ID, schema.SocialView.VideoID, schema.SocialView.ViewerID, schema.SocialView.SessionID,
		schema.SocialView.VideoID, schema.SocialView.ViewerID, schema.SocialView.SessionID,
		schema.SocialView.ID)

	incrementQuery = fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.CoreVideo.Table, schema.CoreVideo.ViewCount, schema.CoreVideo.ViewCount, schema.CoreVideo.ID)
)

/*
Record inserts the view and bumps the video counter atomically.

Description: Executes within an ACID transaction.
1. Inserts into social.view; a duplicate yields no row and the tx ends untouched.
2. Increments core.video.viewcount only for a newly created row.
Roll back completely if any stage fails to prevent counter drift.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - bool: true if the view was counted
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) Record(context context.Context, key Key) (bool, error) {
	var viewer any
	if key.ViewerID != "" {
		viewer = key.ViewerID
	}

	counted := false
	err := postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {

		// Step 1: Persist the view (idempotent)
		var id string
		err := transaction.QueryRow(context, insertViewQuery, uuid.New(), key.VideoID, viewer, key.SessionID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return dberr.Wrap(err, "insert_view")
		}

		// Step 2: Atomic counter bump
		result, err := transaction.Exec(context, incrementQuery, key.VideoID)
		if err != nil {
			return dberr.Wrap(err, "increment_view_count")
		}
		if result.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		counted = true
		return nil
	})
	if err != nil {
		return false, dberr.Wrap(err, "record_view")
	}

	return counted, nil
}

/*
Reconcile recounts one video's views.

Parameters:
  - context: context.Context
  - videoID: string

Returns:
  - int64: Corrected counter
  - bool: Whether it changed
  - error: NOT_FOUND if the video is missing
*/
func (repository *PostgresRepository) Reconcile(context context.Context, videoID string) (int64, bool, error) {
	const query = `
		WITH actual AS (
			SELECT COUNT(*) AS n FROM social.view WHERE videoid = $1
		), previous AS (
			SELECT viewcount FROM core.video WHERE id = $1 AND deletedat IS NULL
		)
		UPDATE core.video v
		SET viewcount = actual.n
		FROM actual, previous
		WHERE v.id = $1
		RETURNING v.viewcount, previous.viewcount <> actual.n
	`

	var (
		count   int64
		changed bool
	)
	if err := repository.db.QueryRow(context, query, videoID).Scan(&count, &changed); err != nil {
		return 0, false, dberr.Wrap(err, "reconcile_view_count")
	}
	return count, changed, nil
}

// ReconcileAll corrects every counter that disagrees with the ledger.
func (repository *PostgresRepository) ReconcileAll(context context.Context) (int64, error) {
	const query = `
		UPDATE core.video v
		SET viewcount = actual.n
		FROM (
			SELECT video.id, COUNT(view.id) AS n
			FROM core.video video
			LEFT JOIN social.view view ON view.videoid = video.id
			GROUP BY video.id
		) actual
		WHERE v.id = actual.id AND v.viewcount <> actual.n
	`

	result, err := repository.db.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "reconcile_all_view_counts")
	}
	return result.RowsAffected(), nil
}
