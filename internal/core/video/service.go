// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"errors"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/social/aggregate"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// Engagement serves like counts and the viewer's liked flag for videos.
type Engagement interface {
	aggregate.Counter
	aggregate.Flagger
}

// # Service Layer

// Service implements video discovery with viewer-relative enrichment.
type Service struct {
	repo   Repository
	owners aggregate.OwnerLookup
	likes  Engagement
}

// NewService constructs a video [Service].
func NewService(repo Repository, owners aggregate.OwnerLookup, likes Engagement) *Service {
	return &Service{repo: repo, owners: owners, likes: likes}
}

// composer builds the enrichment pipeline over source.
func (service *Service) composer(source aggregate.Source[*Video]) *aggregate.Composer[*Video] {
	return aggregate.New(source, func(video *Video) string { return video.ID }).
		WithOwner(func(video *Video) string { return video.OwnerID }, service.owners).
		WithCount(service.likes).
		WithViewerFlag(service.likes)
}

/*
List returns one enriched page of published videos.

Parameters:
  - ctx: context.Context
  - viewerID: string ("" for anonymous)
  - filter: Filter (ChannelID raw, SortBy/SortType unvalidated)
  - params: pagination.Params

Returns:
  - pagination.Page[View]
  - error: VALIDATION_ERROR, INVALID_IDENTIFIER or storage failures
*/
func (service *Service) List(ctx context.Context, viewerID string, filter Filter, params pagination.Params) (pagination.Page[View], error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return pagination.Page[View]{}, err
	}

	page, err := service.composer(func(ctx context.Context, params pagination.Params) ([]*Video, int, error) {
		return service.repo.List(ctx, filter, params)
	}).Page(ctx, viewerID, params)
	if err != nil {
		return pagination.Page[View]{}, err
	}

	return pagination.MapPage(page, toView), nil
}

/*
Get returns one enriched video.

Description: Unpublished videos are reported as NOT_FOUND to everyone but
their owner.

Parameters:
  - ctx: context.Context
  - viewerID: string
  - rawID: string

Returns:
  - View
  - error: INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) Get(ctx context.Context, viewerID, rawID string) (View, error) {
	id, err := validate.Identifier("video_id", rawID)
	if err != nil {
		return View{}, err
	}

	video, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return View{}, apperr.NotFound("Video")
		}
		return View{}, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return View{}, apperr.NotFound("Video")
	}

	item, err := service.composer(nil).One(ctx, viewerID, video)
	if err != nil {
		return View{}, err
	}
	return toView(item), nil
}

/*
ListLiked returns the user's liked videos, most recent like first.

Parameters:
  - ctx: context.Context
  - userID: string (Authenticated actor)
  - params: pagination.Params

Returns:
  - pagination.Page[View]
  - error: UNAUTHORIZED or storage failures
*/
func (service *Service) ListLiked(ctx context.Context, userID string, params pagination.Params) (pagination.Page[View], error) {
	if userID == "" {
		return pagination.Page[View]{}, apperr.Unauthorized("Authentication required")
	}

	page, err := service.composer(func(ctx context.Context, params pagination.Params) ([]*Video, int, error) {
		return service.repo.ListLiked(ctx, userID, params)
	}).Page(ctx, userID, params)
	if err != nil {
		return pagination.Page[View]{}, err
	}

	return pagination.MapPage(page, toView), nil
}

// Exists reports whether a live video exists. It backs identifier validation
// for likes, views and comments.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	return service.repo.Exists(ctx, id)
}

// normalizeFilter validates the channel id and the sort options.
func normalizeFilter(filter Filter) (Filter, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.SortBy = strings.ToLower(strings.TrimSpace(filter.SortBy))
	filter.SortType = strings.ToLower(strings.TrimSpace(filter.SortType))

	if strings.TrimSpace(filter.ChannelID) != "" {
		channelID, err := validate.Identifier("channel", filter.ChannelID)
		if err != nil {
			return Filter{}, err
		}
		filter.ChannelID = channelID
	} else {
		filter.ChannelID = ""
	}

	v := &validate.Validator{}
	if filter.SortBy != "" {
		v.OneOf("sort_by", filter.SortBy, SortKeys...)
	}
	if filter.SortType != "" {
		v.OneOf("sort_type", filter.SortType, "asc", "desc")
	}
	if err := v.Err(); err != nil {
		return Filter{}, err
	}

	return filter, nil
}
