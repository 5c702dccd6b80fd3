// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tweet serves short text posts: the global feed, a user's posts and
// posting. Every tweet is returned with its author, like count and the
// viewer's liked flag.
package tweet

import (
	"time"

	"github.com/taibuivan/vidora/internal/social/aggregate"
	"github.com/taibuivan/vidora/internal/users/profile"
)

// Tweet is a stored tweet row.
type Tweet struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is the enriched tweet returned to clients.
type View struct {
	ID         string           `json:"id"`
	Content    string           `json:"content"`
	CreatedAt  time.Time        `json:"created_at"`
	Owner      *profile.Summary `json:"owner"`
	LikesCount int              `json:"likes_count"`
	IsLiked    bool             `json:"is_liked"`
}

func toView(item aggregate.Item[*Tweet]) View {
	return View{
		ID:         item.Entity.ID,
		Content:    item.Entity.Content,
		CreatedAt:  item.Entity.CreatedAt,
		Owner:      item.Owner,
		LikesCount: item.Count,
		IsLiked:    item.Flag,
	}
}
