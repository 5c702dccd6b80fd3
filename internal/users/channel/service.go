// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

import (
	"context"
	"errors"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/social/aggregate"
)

// Subscriptions is the part of the subscription graph a channel profile needs.
type Subscriptions interface {
	aggregate.Counter
	aggregate.Flagger
	CountSubscriptions(ctx context.Context, subscriberID string) (int, error)
}

// # Service Layer

// Service implements channel profiles and statistics.
type Service struct {
	repo          Repository
	subscriptions Subscriptions
	accountExists validate.ExistsFunc
}

// NewService constructs a channel [Service].
func NewService(repo Repository, subscriptions Subscriptions, accountExists validate.ExistsFunc) *Service {
	return &Service{repo: repo, subscriptions: subscriptions, accountExists: accountExists}
}

/*
Profile returns the channel for a handle, enriched for the viewer.

Parameters:
  - ctx: context.Context
  - viewerID: string ("" for anonymous)
  - rawHandle: string (May carry a leading "@" and any case)

Returns:
  - Profile
  - error: VALIDATION_ERROR, NOT_FOUND or storage failures
*/
func (service *Service) Profile(ctx context.Context, viewerID, rawHandle string) (Profile, error) {
	handle := validate.Handle(rawHandle)
	if err := (&validate.Validator{}).Required("username", handle).Err(); err != nil {
		return Profile{}, err
	}

	channel, err := service.repo.FindByUsername(ctx, handle)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Profile{}, apperr.NotFound("Channel")
		}
		return Profile{}, err
	}

	item, err := aggregate.New[*Channel](nil, func(channel *Channel) string { return channel.ID }).
		WithCount(service.subscriptions).
		WithViewerFlag(service.subscriptions).
		One(ctx, viewerID, channel)
	if err != nil {
		return Profile{}, err
	}

	subscribedTo, err := service.subscriptions.CountSubscriptions(ctx, channel.ID)
	if err != nil {
		return Profile{}, err
	}

	return toProfile(item, subscribedTo), nil
}

/*
Stats returns the totals for a channel id.

Parameters:
  - ctx: context.Context
  - rawChannelID: string

Returns:
  - Stats
  - error: INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) Stats(ctx context.Context, rawChannelID string) (Stats, error) {
	channelID, err := validate.Existing(ctx, "channel_id", "Channel", rawChannelID, service.accountExists)
	if err != nil {
		return Stats{}, err
	}
	return service.repo.Stats(ctx, channelID)
}
