// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/social/toggle"
	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Service Layer

// Service orchestrates the subscription graph.
type Service struct {
	repo          Repository
	accountExists validate.ExistsFunc
	relation      toggle.Relation[Key]
}

// NewService constructs a subscription [Service]. accountExists backs
// channel and subscriber validation.
func NewService(repo Repository, accountExists validate.ExistsFunc) *Service {
	return &Service{
		repo:          repo,
		accountExists: accountExists,
		relation: toggle.Relation[Key]{
			Name:   "subscription",
			Delete: repo.Delete,
			Insert: repo.Insert,
		},
	}
}

/*
Toggle subscribes the user to the channel, or unsubscribes if already subscribed.

Description: Self subscription is rejected on the identifiers alone, so the
outcome never depends on storage state.

Parameters:
  - ctx: context.Context
  - subscriberID: string (Authenticated actor)
  - rawChannelID: string

Returns:
  - Status: {subscribed}
  - error: UNAUTHORIZED, INVALID_IDENTIFIER, SELF_REFERENCE_REJECTED, NOT_FOUND or storage failures
*/
func (service *Service) Toggle(ctx context.Context, subscriberID, rawChannelID string) (Status, error) {
	if subscriberID == "" {
		return Status{}, apperr.Unauthorized("Authentication required")
	}

	channelID, err := validate.Identifier("channel_id", rawChannelID)
	if err != nil {
		return Status{}, err
	}

	if strings.EqualFold(channelID, subscriberID) {
		return Status{}, apperr.SelfReference("You cannot subscribe to your own channel")
	}

	if _, err := validate.Existing(ctx, "channel_id", "Channel", channelID, service.accountExists); err != nil {
		return Status{}, err
	}

	subscribed, err := service.relation.Flip(ctx, Key{SubscriberID: subscriberID, ChannelID: channelID})
	if err != nil {
		return Status{}, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "subscription_toggled",
		slog.String("channel_id", channelID),
		slog.Bool("subscribed", subscribed),
	)

	return Status{Subscribed: subscribed}, nil
}

/*
ListSubscribers returns one page of the channel's subscribers.

Parameters:
  - ctx: context.Context
  - rawChannelID: string
  - params: pagination.Params

Returns:
  - pagination.Page[profile.Summary]
  - error: INVALID_IDENTIFIER, NOT_FOUND or storage failures
*/
func (service *Service) ListSubscribers(ctx context.Context, rawChannelID string, params pagination.Params) (pagination.Page[profile.Summary], error) {
	channelID, err := validate.Existing(ctx, "channel_id", "Channel", rawChannelID, service.accountExists)
	if err != nil {
		return pagination.Page[profile.Summary]{}, err
	}

	summaries, total, err := service.repo.ListSubscribers(ctx, channelID, params)
	if err != nil {
		return pagination.Page[profile.Summary]{}, err
	}

	return pagination.NewPage(summaries, total, params), nil
}

// ListSubscriptions returns one page of the channels the subscriber follows.
func (service *Service) ListSubscriptions(ctx context.Context, rawSubscriberID string, params pagination.Params) (pagination.Page[profile.Summary], error) {
	subscriberID, err := validate.Existing(ctx, "subscriber_id", "User", rawSubscriberID, service.accountExists)
	if err != nil {
		return pagination.Page[profile.Summary]{}, err
	}

	summaries, total, err := service.repo.ListSubscriptions(ctx, subscriberID, params)
	if err != nil {
		return pagination.Page[profile.Summary]{}, err
	}

	return pagination.NewPage(summaries, total, params), nil
}

// CountSubscriptions returns how many channels the user follows.
func (service *Service) CountSubscriptions(ctx context.Context, subscriberID string) (int, error) {
	return service.repo.CountSubscriptions(ctx, subscriberID)
}

// # Composer Adapter

// ChannelView returns the adapter serving subscriber counts and the
// viewer's subscribed flag to the aggregation composer.
func (service *Service) ChannelView() ChannelView {
	return ChannelView{repo: service.repo}
}

// ChannelView adapts the store to aggregate.Counter and aggregate.Flagger.
type ChannelView struct {
	repo Repository
}

// CountMany implements aggregate.Counter.
func (view ChannelView) CountMany(ctx context.Context, ids []string) (map[string]int, error) {
	return view.repo.CountSubscribers(ctx, ids)
}

// FlaggedAmong implements aggregate.Flagger.
func (view ChannelView) FlaggedAmong(ctx context.Context, viewerID string, ids []string) (map[string]bool, error) {
	return view.repo.SubscribedAmong(ctx, viewerID, ids)
}

// CountSubscriptions returns how many channels subscriberID follows.
func (view ChannelView) CountSubscriptions(ctx context.Context, subscriberID string) (int, error) {
	return view.repo.CountSubscriptions(ctx, subscriberID)
}
