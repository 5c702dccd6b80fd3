// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package subscription manages the directed "subscriber follows channel" graph.

# Core Responsibility

  - Toggle: Flips (subscriber, channel) through the shared toggle engine.
    Subscribing to oneself fails with SELF_REFERENCE_REJECTED before any
    storage access.
  - Listings: Subscribers of a channel and channels of a subscriber, both
    projected to [profile.Summary].
  - Composer adapters: Subscriber counts and the viewer's "is subscribed"
    flag for channel pages.

Channels are accounts; there is no separate channel entity.
*/
package subscription

import "time"

// Key is the uniqueness key of one subscription.
type Key struct {
	SubscriberID string
	ChannelID    string
}

// Record is a stored subscription.
type Record struct {
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}

// Status is the response of a toggle.
type Status struct {
	Subscribed bool `json:"subscribed"`
}
