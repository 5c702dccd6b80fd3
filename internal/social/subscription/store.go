// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"

	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Subscription Data Access

// Repository defines the data access contract for subscriptions.
type Repository interface {

	// Exists reports whether the subscription is stored.
	Exists(context context.Context, key Key) (bool, error)

	// Insert stores the subscription. A duplicate fails with CONFLICT.
	Insert(context context.Context, key Key) error

	// Delete removes the subscription and reports whether one existed.
	Delete(context context.Context, key Key) (bool, error)

	/*
		ListSubscribers returns one window of the channel's live subscribers,
		most recent subscription first.

		Returns:
		  - []profile.Summary: Window
		  - int: Size of the whole set
	*/
	ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]profile.Summary, int, error)

	// ListSubscriptions returns one window of the live channels subscriberID follows.
	ListSubscriptions(context context.Context, subscriberID string, params pagination.Params) ([]profile.Summary, int, error)

	// CountSubscribers returns subscriber counts keyed by channel id.
	CountSubscribers(context context.Context, channelIDs []string) (map[string]int, error)

	// CountSubscriptions returns how many channels subscriberID follows.
	CountSubscriptions(context context.Context, subscriberID string) (int, error)

	// SubscribedAmong reports which of channelIDs subscriberID follows.
	SubscribedAmong(context context.Context, subscriberID string, channelIDs []string) (map[string]bool, error)
}
