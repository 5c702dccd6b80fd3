// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	com = schema.SocialComment

	countQuery = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, com.Table, com.VideoID)

	listQuery = fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3`,
		com.ID, com.VideoID, com.OwnerID, com.Content, com.CreatedAt, com.UpdatedAt,
		com.Table,
		com.VideoID,
		com.CreatedAt, com.ID)

	insertQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		com.Table, com.ID, com.VideoID, com.OwnerID, com.Content,
		com.CreatedAt, com.UpdatedAt)

	existsQuery = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, com.Table, com.ID)
)

/*
ListByVideo returns a window of the video's comments, newest first with an id tie-break.

Parameters:
  - context: context.Context
  - videoID: string
  - params: pagination.Params

Returns:
  - []*Comment: Window
  - int: Total comments on the video
  - error: Database failures
*/
func (repository *PostgresRepository) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int, error) {
	var total int
	if err := repository.db.QueryRow(context, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	comments := make([]*Comment, 0, params.Limit)
	if total == 0 {
		return comments, 0, nil
	}

	rows, err := repository.db.Query(context, listQuery, videoID, params.Limit, params.Skip)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_comments")
	}

	return comments, total, nil
}

// Create persists the comment. ID must be set by the caller.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	err := repository.db.QueryRow(context, insertQuery, comment.ID, comment.VideoID, comment.OwnerID, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		// The video was removed after the service checked it
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Video")
		}
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

// Exists reports whether the comment exists.
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	var found bool
	if err := repository.db.QueryRow(context, existsQuery, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, "check_comment_exists")
	}
	return found, nil
}
