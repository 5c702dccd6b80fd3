// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed subscription store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	sub = schema.UserSubscription
	acc = schema.UserAccount

	existsQuery = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		sub.Table, sub.SubscriberID, sub.ChannelID)

	insertQuery = fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		sub.Table, sub.SubscriberID, sub.ChannelID)

	deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		sub.Table, sub.SubscriberID, sub.ChannelID)

	// Counts follow the listings: deleted accounts are not counted
	countManyQuery = fmt.Sprintf(`
		SELECT s.%s, COUNT(*) FROM %s s
		JOIN %s a ON a.%s = s.%s AND a.%s IS NULL
		WHERE s.%s = ANY($1::uuid[])
		GROUP BY s.%s`,
		sub.ChannelID, sub.Table,
		acc.Table, acc.ID, sub.SubscriberID, acc.DeletedAt,
		sub.ChannelID, sub.ChannelID)

	countSubscriptionsQuery = fmt.Sprintf(`
		SELECT COUNT(*) FROM %s s
		JOIN %s a ON a.%s = s.%s AND a.%s IS NULL
		WHERE s.%s = $1`,
		sub.Table,
		acc.Table, acc.ID, sub.ChannelID, acc.DeletedAt,
		sub.SubscriberID)

	subscribedAmongQuery = fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = ANY($2::uuid[])`,
		sub.ChannelID, sub.Table, sub.SubscriberID, sub.ChannelID)
)

// Exists reports whether the subscription is stored.
func (repository *PostgresRepository) Exists(context context.Context, key Key) (bool, error) {
	var found bool
	if err := repository.db.QueryRow(context, existsQuery, key.SubscriberID, key.ChannelID).Scan(&found); err != nil {
		return false, dberr.Wrap(err, "check_subscription")
	}
	return found, nil
}

// Insert stores the subscription. The primary key turns a duplicate into CONFLICT.
func (repository *PostgresRepository) Insert(context context.Context, key Key) error {
	if _, err := repository.db.Exec(context, insertQuery, key.SubscriberID, key.ChannelID); err != nil {
		return dberr.Wrap(err, "insert_subscription")
	}
	return nil
}

// Delete removes the subscription and reports whether one existed.
func (repository *PostgresRepository) Delete(context context.Context, key Key) (bool, error) {
	result, err := repository.db.Exec(context, deleteQuery, key.SubscriberID, key.ChannelID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_subscription")
	}
	return result.RowsAffected() > 0, nil
}

/*
ListSubscribers returns the channel's subscribers, newest subscription first.

Description: Deleted accounts are excluded from both the window and the
total. Ties on the subscription time are broken by account id.

Parameters:
  - context: context.Context
  - channelID: string
  - params: pagination.Params

Returns:
  - []profile.Summary: Window
  - int: Total
  - error: Database failures
*/
func (repository *PostgresRepository) ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]profile.Summary, int, error) {
	// Join on the subscriber side, filter on the channel side
	return repository.listSide(context, sub.SubscriberID, sub.ChannelID, channelID, params, "list_subscribers")
}

// ListSubscriptions returns the channels subscriberID follows, newest first.
func (repository *PostgresRepository) ListSubscriptions(context context.Context, subscriberID string, params pagination.Params) ([]profile.Summary, int, error) {
	return repository.listSide(context, sub.ChannelID, sub.SubscriberID, subscriberID, params, "list_subscriptions")
}

// listSide projects the accounts on joinColumn for rows where filterColumn = id.
func (repository *PostgresRepository) listSide(context context.Context, joinColumn, filterColumn, id string, params pagination.Params, action string) ([]profile.Summary, int, error) {
	from := fmt.Sprintf(`
		FROM %s s
		JOIN %s a ON a.%s = s.%s AND a.%s IS NULL
		WHERE s.%s = $1`,
		sub.Table, acc.Table, acc.ID, joinColumn, acc.DeletedAt, filterColumn)

	var total int
	if err := repository.db.QueryRow(context, "SELECT COUNT(*)"+from, id).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, action+"_count")
	}

	summaries := make([]profile.Summary, 0, params.Limit)
	if total == 0 {
		return summaries, 0, nil
	}

	query := fmt.Sprintf(`SELECT a.%s, a.%s, a.%s, a.%s %s ORDER BY s.%s DESC, a.%s DESC LIMIT $2 OFFSET $3`,
		acc.ID, acc.Username, acc.DisplayName, acc.AvatarURL, from, sub.CreatedAt, acc.ID)

	rows, err := repository.db.Query(context, query, id, params.Limit, params.Skip)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	for rows.Next() {
		var summary profile.Summary
		if err := rows.Scan(&summary.ID, &summary.Username, &summary.DisplayName, &summary.AvatarURL); err != nil {
			return nil, 0, dberr.Wrap(err, action+"_scan")
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, action+"_iterate")
	}

	return summaries, total, nil
}

// CountSubscribers returns subscriber counts keyed by channel id.
func (repository *PostgresRepository) CountSubscribers(context context.Context, channelIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(channelIDs))
	if len(channelIDs) == 0 {
		return counts, nil
	}

	rows, err := repository.db.Query(context, countManyQuery, channelIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "count_subscribers")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_subscriber_count")
		}
		counts[id] = count
	}

	return counts, dberr.Wrap(rows.Err(), "iterate_subscriber_counts")
}

// CountSubscriptions returns how many channels subscriberID follows.
func (repository *PostgresRepository) CountSubscriptions(context context.Context, subscriberID string) (int, error) {
	var count int
	if err := repository.db.QueryRow(context, countSubscriptionsQuery, subscriberID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_subscriptions")
	}
	return count, nil
}

// SubscribedAmong reports which of channelIDs subscriberID follows.
func (repository *PostgresRepository) SubscribedAmong(context context.Context, subscriberID string, channelIDs []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(channelIDs))
	if len(channelIDs) == 0 {
		return flags, nil
	}

	rows, err := repository.db.Query(context, subscribedAmongQuery, subscriberID, channelIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "subscribed_among")
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_subscribed_among")
		}
		flags[id] = true
	}

	return flags, dberr.Wrap(rows.Err(), "iterate_subscribed_among")
}
