// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/social/aggregate"
	"github.com/taibuivan/vidora/pkg/pagination"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Engagement serves like counts and the viewer's liked flag for comments.
type Engagement interface {
	aggregate.Counter
	aggregate.Flagger
}

// # Service Layer

// Service implements comment listing and creation.
type Service struct {
	repo        Repository
	owners      aggregate.OwnerLookup
	likes       Engagement
	videoExists validate.ExistsFunc
}

// NewService constructs a comment [Service].
func NewService(repo Repository, owners aggregate.OwnerLookup, likes Engagement, videoExists validate.ExistsFunc) *Service {
	return &Service{repo: repo, owners: owners, likes: likes, videoExists: videoExists}
}

func (service *Service) composer(source aggregate.Source[*Comment]) *aggregate.Composer[*Comment] {
	return aggregate.New(source, func(comment *Comment) string { return comment.ID }).
		WithOwner(func(comment *Comment) string { return comment.OwnerID }, service.owners).
		WithCount(service.likes).
		WithViewerFlag(service.likes)
}

/*
List returns one enriched page of a video's comments, newest first.

Parameters:
  - ctx: context.Context
  - viewerID: string ("" for anonymous)
  - rawVideoID: string
  - params: pagination.Params

Returns:
  - pagination.Page[View]
  - error: INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) List(ctx context.Context, viewerID, rawVideoID string, params pagination.Params) (pagination.Page[View], error) {
	videoID, err := validate.Existing(ctx, "video_id", "Video", rawVideoID, service.videoExists)
	if err != nil {
		return pagination.Page[View]{}, err
	}

	page, err := service.composer(func(ctx context.Context, params pagination.Params) ([]*Comment, int, error) {
		return service.repo.ListByVideo(ctx, videoID, params)
	}).Page(ctx, viewerID, params)
	if err != nil {
		return pagination.Page[View]{}, err
	}

	return pagination.MapPage(page, toView), nil
}

/*
Add posts a comment on a video and returns it enriched.

Description: The new comment has no likes yet, so it reports likes_count 0
and is_liked false without another round trip for either.

Parameters:
  - ctx: context.Context
  - userID: string (Authenticated author)
  - rawVideoID: string
  - content: string

Returns:
  - View
  - error: UNAUTHORIZED, VALIDATION_ERROR, INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) Add(ctx context.Context, userID, rawVideoID, content string) (View, error) {
	if userID == "" {
		return View{}, apperr.Unauthorized("Authentication required")
	}

	content = strings.TrimSpace(content)
	if err := (&validate.Validator{}).
		Required("content", content).
		MaxLen("content", content, constants.MaxCommentContentLen).
		Err(); err != nil {
		return View{}, err
	}

	videoID, err := validate.Existing(ctx, "video_id", "Video", rawVideoID, service.videoExists)
	if err != nil {
		return View{}, err
	}

	comment := &Comment{ID: uuid.New(), VideoID: videoID, OwnerID: userID, Content: content}
	if err := service.repo.Create(ctx, comment); err != nil {
		return View{}, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("video_id", videoID),
	)

	// Owner only: counts and flags of a fresh comment are known to be zero
	item, err := aggregate.New[*Comment](nil, func(comment *Comment) string { return comment.ID }).
		WithOwner(func(comment *Comment) string { return comment.OwnerID }, service.owners).
		One(ctx, userID, comment)
	if err != nil {
		return View{}, err
	}

	return toView(item), nil
}

// Exists reports whether the comment exists. It backs like validation.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	return service.repo.Exists(ctx, id)
}
