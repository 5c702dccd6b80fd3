// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tweet store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	tw = schema.SocialTweet

	// $1 IS NULL selects the global feed
	ownerClause = fmt.Sprintf(`($1::uuid IS NULL OR %s = $1::uuid)`, tw.OwnerID)

	countQuery = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, tw.Table, ownerClause)

	listQuery = fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3`,
		tw.ID, tw.OwnerID, tw.Content, tw.CreatedAt, tw.UpdatedAt,
		tw.Table,
		ownerClause,
		tw.CreatedAt, tw.ID)

	insertQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		tw.Table, tw.ID, tw.OwnerID, tw.Content, tw.CreatedAt, tw.UpdatedAt)

	existsQuery = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, tw.Table, tw.ID)
)

/*
List returns a window of tweets, newest first with an id tie-break.

Parameters:
  - context: context.Context
  - ownerID: string ("" for the global feed)
  - params: pagination.Params

Returns:
  - []*Tweet: Window
  - int: Total matching tweets
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int, error) {
	var owner any
	if ownerID != "" {
		owner = ownerID
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, owner).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tweets")
	}

	tweets := make([]*Tweet, 0, params.Limit)
	if total == 0 {
		return tweets, 0, nil
	}

	rows, err := repository.db.Query(context, listQuery, owner, params.Limit, params.Skip)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tweets")
	}
	defer rows.Close()

	for rows.Next() {
		tweet := &Tweet{}
		if err := rows.Scan(&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tweet")
		}
		tweets = append(tweets, tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_tweets")
	}

	return tweets, total, nil
}

// Create persists the tweet. ID must be set by the caller.
func (repository *PostgresRepository) Create(context context.Context, tweet *Tweet) error {
	err := repository.db.QueryRow(context, insertQuery, tweet.ID, tweet.OwnerID, tweet.Content).
		Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_tweet")
	}
	return nil
}

// Exists reports whether the tweet exists.
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	var found bool
	if err := repository.db.QueryRow(context, existsQuery, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, "check_tweet_exists")
	}
	return found, nil
}
