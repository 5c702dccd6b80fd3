// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

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

// NewPostgresRepository constructs a PostgreSQL backed channel store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var findByUsernameQuery = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, %s
	FROM %s
	WHERE %s = $1 AND %s IS NULL`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.DisplayName,
	schema.UserAccount.AvatarURL, schema.UserAccount.CoverURL, schema.UserAccount.CreatedAt,
	schema.UserAccount.Table,
	schema.UserAccount.Username, schema.UserAccount.DeletedAt,
)

// FindByUsername returns the live channel with the handle.
func (repository *PostgresRepository) FindByUsername(context context.Context, handle string) (*Channel, error) {
	channel := &Channel{}
	err := repository.db.QueryRow(context, findByUsernameQuery, handle).Scan(
		&channel.ID,
		&channel.Username,
		&channel.DisplayName,
		&channel.AvatarURL,
		&channel.CoverURL,
		&channel.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_channel")
	}
	return channel, nil
}

/*
Stats computes the channel totals in one round trip.

Description: Uses independent scalar sub-queries so one empty side (no
videos, no subscribers) never zeroes the others. Soft-deleted videos and
accounts are excluded.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - Stats
  - error: Database failures
*/
func (repository *PostgresRepository) Stats(context context.Context, channelID string) (Stats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM core.video
			 WHERE ownerid = $1 AND deletedat IS NULL),
			(SELECT COUNT(*) FROM users.subscription s
			 JOIN users.account a ON a.id = s.subscriberid AND a.deletedat IS NULL
			 WHERE s.channelid = $1),
			(SELECT COALESCE(SUM(viewcount), 0) FROM core.video
			 WHERE ownerid = $1 AND deletedat IS NULL),
			(SELECT COUNT(*) FROM social.like l
			 JOIN core.video v ON v.id = l.targetid AND v.deletedat IS NULL
			 WHERE l.kind = 'video' AND v.ownerid = $1)
	`

	stats := Stats{ChannelID: channelID}
	err := repository.db.QueryRow(context, query, channelID).Scan(
		&stats.TotalVideos,
		&stats.TotalSubscribers,
		&stats.TotalViews,
		&stats.TotalLikes,
	)
	if err != nil {
		return Stats{}, dberr.Wrap(err, "channel_stats")
	}
	return stats, nil
}
