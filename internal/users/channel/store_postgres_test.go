// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/postgres/pgtest"
	"github.com/taibuivan/vidora/internal/social/like"
	"github.com/taibuivan/vidora/internal/social/subscription"
	"github.com/taibuivan/vidora/internal/users/channel"
	"github.com/taibuivan/vidora/internal/users/profile"
)

/*
TestPostgresRepository checks profile lookup and stats against real data.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()
	pgtest.Reset(t, pool)

	owner := pgtest.Account(t, pool, "owner")
	fan := pgtest.Account(t, pool, "fan")
	v1 := pgtest.Video(t, pool, owner, "one")
	v2 := pgtest.Video(t, pool, owner, "two")
	gone := pgtest.Video(t, pool, owner, "gone")

	_, err := pool.Exec(ctx, `UPDATE core.video SET viewcount = 10 WHERE id = $1`, v1)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE core.video SET viewcount = 5 WHERE id = $1`, v2)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE core.video SET viewcount = 99, deletedat = NOW() WHERE id = $1`, gone)
	require.NoError(t, err)

	likes := like.NewPostgresRepository(pool)
	for _, key := range []like.Key{
		{LikedBy: fan, Kind: like.KindVideo, TargetID: v1},
		{LikedBy: owner, Kind: like.KindVideo, TargetID: v1},
		{LikedBy: fan, Kind: like.KindVideo, TargetID: v2},
	} {
		_, err := likes.Insert(ctx, key)
		require.NoError(t, err)
	}

	subscriptions := subscription.NewPostgresRepository(pool)
	require.NoError(t, subscriptions.Insert(ctx, subscription.Key{SubscriberID: fan, ChannelID: owner}))

	repo := channel.NewPostgresRepository(pool)
	accounts := profile.NewPostgresRepository(pool)
	service := channel.NewService(repo,
		subscription.NewService(subscriptions, accounts.Exists).ChannelView(), accounts.Exists)

	stats, err := service.Stats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, channel.Stats{
		ChannelID:        owner,
		TotalVideos:      2,
		TotalSubscribers: 1,
		TotalViews:       15,
		TotalLikes:       3,
	}, stats)

	profileView, err := service.Profile(ctx, fan, "@Owner")
	require.NoError(t, err)
	assert.Equal(t, owner, profileView.ID)
	assert.Equal(t, 1, profileView.SubscribersCount)
	assert.Zero(t, profileView.SubscribedToCount)
	assert.True(t, profileView.IsSubscribed)

	fanView, err := service.Profile(ctx, owner, "fan")
	require.NoError(t, err)
	assert.Equal(t, 1, fanView.SubscribedToCount)
	assert.False(t, fanView.IsSubscribed)
}
