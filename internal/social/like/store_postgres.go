// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed like store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	keyPredicate = fmt.Sprintf("%s = $1 AND %s = $2 AND %s = $3",
		schema.SocialLike.LikedBy, schema.SocialLike.Kind, schema.SocialLike.TargetID)

	existsQuery = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s)`,
		schema.SocialLike.Table, keyPredicate)

	insertQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.SocialLike.Table,
		schema.SocialLike.ID, schema.SocialLike.LikedBy, schema.SocialLike.Kind, schema.SocialLike.TargetID,
		schema.SocialLike.CreatedAt)

	deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s`, schema.SocialLike.Table, keyPredicate)

	countQuery = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialLike.Table, schema.SocialLike.Kind, schema.SocialLike.TargetID)

	countManyQuery = fmt.Sprintf(`
		SELECT %s, COUNT(*) FROM %s
		WHERE %s = $1 AND %s = ANY($2::uuid[])
		GROUP BY %s`,
		schema.SocialLike.TargetID, schema.SocialLike.Table,
		schema.SocialLike.Kind, schema.SocialLike.TargetID,
		schema.SocialLike.TargetID)

	likedAmongQuery = fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = ANY($3::uuid[])`,
		schema.SocialLike.TargetID, schema.SocialLike.Table,
		schema.SocialLike.LikedBy, schema.SocialLike.Kind, schema.SocialLike.TargetID)
)

// # Single Key Operations

// Exists reports whether the like identified by key is stored.
func (repository *PostgresRepository) Exists(context context.Context, key Key) (bool, error) {
	var found bool
	err := repository.db.QueryRow(context, existsQuery, key.LikedBy, key.Kind, key.TargetID).Scan(&found)
	if err != nil {
		return false, dberr.Wrap(err, "check_like_exists")
	}
	return found, nil
}

/*
Insert stores a new like.

Description: The (likedby, kind, targetid) unique constraint turns a
concurrent duplicate into SQLSTATE 23505, which dberr maps to CONFLICT.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - *Record: The stored like
  - error: CONFLICT on duplicates, other persistence failures
*/
func (repository *PostgresRepository) Insert(context context.Context, key Key) (*Record, error) {
	record := &Record{ID: uuid.New(), LikedBy: key.LikedBy, Kind: key.Kind, TargetID: key.TargetID}

	err := repository.db.QueryRow(context, insertQuery, record.ID, key.LikedBy, key.Kind, key.TargetID).Scan(&record.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "insert_like")
	}
	return record, nil
}

// Delete removes the like identified by key and reports whether one existed.
func (repository *PostgresRepository) Delete(context context.Context, key Key) (bool, error) {
	result, err := repository.db.Exec(context, deleteQuery, key.LikedBy, key.Kind, key.TargetID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_like")
	}
	return result.RowsAffected() > 0, nil
}

// # Counting

// CountFor returns the number of likes on one target.
func (repository *PostgresRepository) CountFor(context context.Context, kind Kind, targetID string) (int, error) {
	var count int
	if err := repository.db.QueryRow(context, countQuery, kind, targetID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_likes")
	}
	return count, nil
}

// CountMany returns like counts for a batch of targets of one kind.
func (repository *PostgresRepository) CountMany(context context.Context, kind Kind, targetIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}

	rows, err := repository.db.Query(context, countManyQuery, kind, targetIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "count_likes_batch")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			targetID string
			count    int
		)
		if err := rows.Scan(&targetID, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_like_count")
		}
		counts[targetID] = count
	}

	return counts, dberr.Wrap(rows.Err(), "iterate_like_counts")
}

// LikedAmong reports which of the targets userID has liked.
func (repository *PostgresRepository) LikedAmong(context context.Context, userID string, kind Kind, targetIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(targetIDs) == 0 {
		return liked, nil
	}

	rows, err := repository.db.Query(context, likedAmongQuery, userID, kind, targetIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_liked_targets")
	}
	defer rows.Close()

	for rows.Next() {
		var targetID string
		if err := rows.Scan(&targetID); err != nil {
			return nil, dberr.Wrap(err, "scan_liked_target")
		}
		liked[targetID] = true
	}

	return liked, dberr.Wrap(rows.Err(), "iterate_liked_targets")
}
