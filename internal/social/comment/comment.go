// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment serves the comment threads under videos.

Listings and newly created comments are enriched with the author summary,
the like count and the viewer's liked flag.
*/
package comment

import (
	"time"

	"github.com/taibuivan/vidora/internal/social/aggregate"
	"github.com/taibuivan/vidora/internal/users/profile"
)

// Comment is a stored comment row.
type Comment struct {
	ID        string
	VideoID   string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is the enriched comment returned to clients.
type View struct {
	ID         string           `json:"id"`
	VideoID    string           `json:"video_id"`
	Content    string           `json:"content"`
	CreatedAt  time.Time        `json:"created_at"`
	Owner      *profile.Summary `json:"owner"`
	LikesCount int              `json:"likes_count"`
	IsLiked    bool             `json:"is_liked"`
}

func toView(item aggregate.Item[*Comment]) View {
	return View{
		ID:         item.Entity.ID,
		VideoID:    item.Entity.VideoID,
		Content:    item.Entity.Content,
		CreatedAt:  item.Entity.CreatedAt,
		Owner:      item.Owner,
		LikesCount: item.Count,
		IsLiked:    item.Flag,
	}
}
