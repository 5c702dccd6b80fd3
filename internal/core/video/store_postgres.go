// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed video store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	vid = schema.CoreVideo

	// selectColumns is the v.-qualified projection matching scanVideo.
	selectColumns = "v." + strings.Join(vid.Columns(), ", v.")

	sortColumns = map[string]string{
		SortCreatedAt: vid.CreatedAt,
		SortViews:     vid.ViewCount,
		SortDuration:  vid.Duration,
		SortTitle:     vid.Title,
	}

	findQuery = fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1 AND v.%s IS NULL`,
		selectColumns, vid.Table, vid.ID, vid.DeletedAt)

	existsQuery = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		vid.Table, vid.ID, vid.DeletedAt)
)

/*
List returns a filtered, paginated slice of published videos and the total count.

Description: The WHERE clause is assembled dynamically with positional
arguments. Sorting uses a whitelisted column with the id as a stable
tie-break in the same direction. The total is computed by a separate
COUNT so it stays correct for windows past the end of the set.

Parameters:
  - context: context.Context
  - filter: Filter (Search, channel, sorting)
  - params: pagination.Params

Returns:
  - []*Video: Window
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Video, int, error) {

	// Query build initialization
	var where strings.Builder
	var args []any
	argID := 1

	where.WriteString(fmt.Sprintf(" WHERE v.%s IS NULL AND v.%s", vid.DeletedAt, vid.IsPublished))

	// Channel Filtering
	if filter.ChannelID != "" {
		where.WriteString(fmt.Sprintf(" AND v.%s = $%d", vid.OwnerID, argID))
		args = append(args, filter.ChannelID)
		argID++
	}

	// Search Query Filtering
	if filter.Query != "" {
		where.WriteString(fmt.Sprintf(` AND (v.%s ILIKE $%d ESCAPE '\' OR v.%s ILIKE $%d ESCAPE '\')`,
			vid.Title, argID, vid.Description, argID))
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		argID++
	}

	// Total of the whole matching set
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s v%s", vid.Table, where.String())
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_videos")
	}
	if total == 0 {
		return []*Video{}, 0, nil
	}

	// Apply Sorting Logic
	sort, found := sortColumns[filter.SortBy]
	if !found {
		sort = vid.CreatedAt
	}
	sortDir := "DESC"
	if strings.EqualFold(filter.SortType, "asc") {
		sortDir = "ASC"
	}

	query := fmt.Sprintf("SELECT %s FROM %s v%s ORDER BY v.%s %s, v.%s %s LIMIT $%d OFFSET $%d",
		selectColumns, vid.Table, where.String(), sort, sortDir, vid.ID, sortDir, argID, argID+1)
	args = append(args, params.Limit, params.Skip)

	videos, err := repository.queryVideos(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_videos")
	}
	return videos, total, nil
}

// FindByID returns a live video.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Video, error) {
	video, err := scanVideo(repository.db.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_video")
	}
	return video, nil
}

/*
ListLiked returns the published videos a user liked, newest like first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Video: Window
  - int: Total liked videos still visible
  - error: Database failures
*/
func (repository *PostgresRepository) ListLiked(context context.Context, userID string, params pagination.Params) ([]*Video, int, error) {
	like := schema.SocialLike
	from := fmt.Sprintf(`
		FROM %s l
		JOIN %s v ON v.%s = l.%s AND v.%s IS NULL AND v.%s
		WHERE l.%s = $1 AND l.%s = 'video'`,
		like.Table,
		vid.Table, vid.ID, like.TargetID, vid.DeletedAt, vid.IsPublished,
		like.LikedBy, like.Kind)

	var total int
	if err := repository.db.QueryRow(context, "SELECT COUNT(*)"+from, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_liked_videos")
	}
	if total == 0 {
		return []*Video{}, 0, nil
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY l.%s DESC, v.%s DESC LIMIT $2 OFFSET $3",
		selectColumns, from, like.CreatedAt, vid.ID)

	videos, err := repository.queryVideos(context, query, userID, params.Limit, params.Skip)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_liked_videos")
	}
	return videos, total, nil
}

// Exists reports whether a live video exists.
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	var found bool
	if err := repository.db.QueryRow(context, existsQuery, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, "check_video_exists")
	}
	return found, nil
}

// # Helpers

func (repository *PostgresRepository) queryVideos(context context.Context, query string, args ...any) ([]*Video, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]*Video, 0)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

// scanVideo reads one row in [schema.CoreVideoTable.Columns] order.
func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.ViewCount,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// escapeLike quotes the ILIKE wildcards in user input.
func escapeLike(raw string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(raw)
}
