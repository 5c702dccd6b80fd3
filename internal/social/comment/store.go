// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/vidora/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {

	// ListByVideo returns one window of a video's comments, newest first, plus the total.
	ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int, error)

	// Create persists the comment and fills its server-side fields.
	Create(context context.Context, comment *Comment) error

	// Exists reports whether the comment exists.
	Exists(context context.Context, id string) (bool, error)
}
