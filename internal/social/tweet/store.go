// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"context"

	"github.com/taibuivan/vidora/pkg/pagination"
)

// Repository defines the data access contract for tweets.
type Repository interface {

	// List returns one window of tweets, newest first, plus the total.
	// An empty ownerID lists every tweet.
	List(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int, error)

	// Create persists the tweet and fills its timestamps.
	Create(context context.Context, tweet *Tweet) error

	// Exists reports whether the tweet exists.
	Exists(context context.Context, id string) (bool, error)
}
