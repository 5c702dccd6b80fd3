// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video provides read access to the video catalogue, enriched for the
requesting viewer.

# Core Responsibility

  - Discovery: Paginated listing with text search, channel filter and a
    whitelisted sort key. Only published, non-deleted videos are listed.
  - Detail: A single video; unpublished videos are visible to their owner only.
  - Liked videos: The viewer's liked videos, most recent like first.
  - Enrichment: Every video carries its owner summary, like count and the
    viewer's liked flag through the aggregation composer.

Uploading and editing videos belong to the media pipeline and are not served here.
*/
package video

import (
	"time"

	"github.com/taibuivan/vidora/internal/social/aggregate"
	"github.com/taibuivan/vidora/internal/users/profile"
)

// # Domain Entities

// Video is a stored video row.
type Video struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	ViewCount    int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// View is the enriched video returned to clients.
type View struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	VideoURL     string           `json:"video_url"`
	ThumbnailURL string           `json:"thumbnail_url"`
	Duration     float64          `json:"duration"`
	Views        int64            `json:"views"`
	IsPublished  bool             `json:"is_published"`
	CreatedAt    time.Time        `json:"created_at"`
	Owner        *profile.Summary `json:"owner"`
	LikesCount   int              `json:"likes_count"`
	IsLiked      bool             `json:"is_liked"`
}

// toView flattens a composer item.
func toView(item aggregate.Item[*Video]) View {
	video := item.Entity
	return View{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.ViewCount,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
		Owner:        item.Owner,
		LikesCount:   item.Count,
		IsLiked:      item.Flag,
	}
}

// # Listing Filter

// Sort keys accepted by the listing.
const (
	SortCreatedAt = "created_at"
	SortViews     = "views"
	SortDuration  = "duration"
	SortTitle     = "title"
)

// SortKeys lists the accepted sort_by values.
var SortKeys = []string{SortCreatedAt, SortViews, SortDuration, SortTitle}

// Filter narrows the video listing.
type Filter struct {
	// Query matches title or description, case-insensitively.
	Query string

	// ChannelID restricts to one owner. Canonical once validated.
	ChannelID string

	SortBy   string
	SortType string
}
