// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"

	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Video Data Access

// Repository defines read access to videos.
type Repository interface {

	/*
		List returns one window of published videos matching the filter.

		Returns:
		  - []*Video: Window in the requested order
		  - int: Size of the whole matching set
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, params pagination.Params) ([]*Video, int, error)

	// FindByID returns a live video, published or not. NOT_FOUND if absent.
	FindByID(context context.Context, id string) (*Video, error)

	// ListLiked returns the published videos userID liked, newest like first.
	ListLiked(context context.Context, userID string, params pagination.Params) ([]*Video, int, error)

	// Exists reports whether a live video exists.
	Exists(context context.Context, id string) (bool, error)
}
