// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

import "context"

// Repository defines read access to channels.
type Repository interface {

	// FindByUsername returns the live channel with the normalized handle.
	// NOT_FOUND if absent.
	FindByUsername(context context.Context, handle string) (*Channel, error)

	// Stats computes the totals for a channel id.
	Stats(context context.Context, channelID string) (Stats, error)
}
