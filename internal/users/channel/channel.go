// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package channel presents an account as a channel: its public profile with
subscription counts, and aggregate statistics over its videos.

# Core Responsibility

  - Profile: Looked up by handle. Carries subscriber and subscribed-to
    counts and whether the viewer is subscribed (always false when anonymous).
  - Stats: Totals over the channel's live videos (videos, views, likes)
    plus its subscriber count.
*/
package channel

import (
	"time"

	"github.com/taibuivan/vidora/internal/social/aggregate"
)

// Channel is the stored account projected as a channel.
type Channel struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   *string
	CoverURL    *string
	CreatedAt   time.Time
}

// Profile is the enriched channel returned to clients.
type Profile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"display_name"`
	AvatarURL         *string   `json:"avatar_url"`
	CoverURL          *string   `json:"cover_url"`
	CreatedAt         time.Time `json:"created_at"`
	SubscribersCount  int       `json:"subscribers_count"`
	SubscribedToCount int       `json:"subscribed_to_count"`
	IsSubscribed      bool      `json:"is_subscribed"`
}

func toProfile(item aggregate.Item[*Channel], subscribedTo int) Profile {
	return Profile{
		ID:                item.Entity.ID,
		Username:          item.Entity.Username,
		DisplayName:       item.Entity.DisplayName,
		AvatarURL:         item.Entity.AvatarURL,
		CoverURL:          item.Entity.CoverURL,
		CreatedAt:         item.Entity.CreatedAt,
		SubscribersCount:  item.Count,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      item.Flag,
	}
}

// Stats aggregates a channel's activity.
type Stats struct {
	ChannelID        string `json:"channel_id"`
	TotalVideos      int    `json:"total_videos"`
	TotalSubscribers int    `json:"total_subscribers"`
	TotalViews       int64  `json:"total_views"`
	TotalLikes       int    `json:"total_likes"`
}
