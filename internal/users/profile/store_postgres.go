// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed profile store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var summariesQuery = fmt.Sprintf(`
	SELECT %s, %s, %s, %s
	FROM %s
	WHERE %s = ANY($1::uuid[]) AND %s IS NULL`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
	schema.UserAccount.Table,
	schema.UserAccount.ID, schema.UserAccount.DeletedAt,
)

var existsQuery = fmt.Sprintf(`
	SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt,
)

/*
Summaries resolves owner summaries for a batch of ids in a single query.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - map[string]Summary: Found accounts keyed by id
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Summaries(context context.Context, ids []string) (map[string]Summary, error) {
	summaries := make(map[string]Summary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	rows, err := repository.db.Query(context, summariesQuery, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_owner_summaries")
	}
	defer rows.Close()

	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.ID, &summary.Username, &summary.DisplayName, &summary.AvatarURL); err != nil {
			return nil, dberr.Wrap(err, "scan_owner_summary")
		}
		summaries[summary.ID] = summary
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_owner_summaries")
	}

	return summaries, nil
}

// Exists reports whether a live account with the id exists.
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	var found bool
	if err := repository.db.QueryRow(context, existsQuery, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, "check_account_exists")
	}
	return found, nil
}
