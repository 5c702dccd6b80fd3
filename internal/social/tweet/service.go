// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

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

// Engagement serves like counts and the viewer's liked flag for tweets.
type Engagement interface {
	aggregate.Counter
	aggregate.Flagger
}

// # Service Layer

// Service implements the tweet feed.
type Service struct {
	repo          Repository
	owners        aggregate.OwnerLookup
	likes         Engagement
	accountExists validate.ExistsFunc
}

// NewService constructs a tweet [Service].
func NewService(repo Repository, owners aggregate.OwnerLookup, likes Engagement, accountExists validate.ExistsFunc) *Service {
	return &Service{repo: repo, owners: owners, likes: likes, accountExists: accountExists}
}

func (service *Service) page(ctx context.Context, viewerID, ownerID string, params pagination.Params) (pagination.Page[View], error) {
	page, err := aggregate.New(
		func(ctx context.Context, params pagination.Params) ([]*Tweet, int, error) {
			return service.repo.List(ctx, ownerID, params)
		},
		func(tweet *Tweet) string { return tweet.ID },
	).
		WithOwner(func(tweet *Tweet) string { return tweet.OwnerID }, service.owners).
		WithCount(service.likes).
		WithViewerFlag(service.likes).
		Page(ctx, viewerID, params)
	if err != nil {
		return pagination.Page[View]{}, err
	}

	return pagination.MapPage(page, toView), nil
}

// Feed returns one enriched page of every tweet, newest first.
func (service *Service) Feed(ctx context.Context, viewerID string, params pagination.Params) (pagination.Page[View], error) {
	return service.page(ctx, viewerID, "", params)
}

/*
ByUser returns one enriched page of a user's tweets.

Parameters:
  - ctx: context.Context
  - viewerID: string
  - rawUserID: string
  - params: pagination.Params

Returns:
  - pagination.Page[View]
  - error: INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) ByUser(ctx context.Context, viewerID, rawUserID string, params pagination.Params) (pagination.Page[View], error) {
	userID, err := validate.Existing(ctx, "user_id", "User", rawUserID, service.accountExists)
	if err != nil {
		return pagination.Page[View]{}, err
	}
	return service.page(ctx, viewerID, userID, params)
}

/*
Create posts a tweet for the authenticated user.

Parameters:
  - ctx: context.Context
  - userID: string
  - content: string

Returns:
  - View: The created tweet with likes_count 0
  - error: UNAUTHORIZED, VALIDATION_ERROR or storage failures
*/
func (service *Service) Create(ctx context.Context, userID, content string) (View, error) {
	if userID == "" {
		return View{}, apperr.Unauthorized("Authentication required")
	}

	content = strings.TrimSpace(content)
	if err := (&validate.Validator{}).
		Required("content", content).
		MaxLen("content", content, constants.MaxTweetContentLen).
		Err(); err != nil {
		return View{}, err
	}

	tweet := &Tweet{ID: uuid.New(), OwnerID: userID, Content: content}
	if err := service.repo.Create(ctx, tweet); err != nil {
		return View{}, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "tweet_created", slog.String("tweet_id", tweet.ID))

	owners, err := service.owners.Summaries(ctx, []string{userID})
	if err != nil {
		return View{}, err
	}

	view := toView(aggregate.Item[*Tweet]{Entity: tweet})
	if owner, found := owners[userID]; found {
		view.Owner = &owner
	}
	return view, nil
}

// Exists reports whether the tweet exists. It backs like validation.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	return service.repo.Exists(ctx, id)
}
