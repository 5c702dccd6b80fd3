// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/postgres/pgtest"
	"github.com/taibuivan/vidora/internal/social/like"
	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
)

/*
TestPostgresRepository runs the video store against a real PostgreSQL.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.Start(t)
	repo := video.NewPostgresRepository(pool)
	ctx := context.Background()

	t.Run("list_filters_and_sorts", func(t *testing.T) {
		pgtest.Reset(t, pool)
		alice := pgtest.Account(t, pool, "alice")
		bob := pgtest.Account(t, pool, "bob")

		cats := pgtest.Video(t, pool, alice, "Cats 100%")
		dogs := pgtest.Video(t, pool, alice, "Dogs")
		hidden := pgtest.Video(t, pool, bob, "Cats in the dark")
		_, err := pool.Exec(ctx, `UPDATE core.video SET ispublished = FALSE WHERE id = $1`, hidden)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, `UPDATE core.video SET viewcount = 7 WHERE id = $1`, dogs)
		require.NoError(t, err)

		all, total, err := repo.List(ctx, video.Filter{}, pagination.Normalize("", ""))
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, all, 2)
		assert.Equal(t, dogs, all[0].ID, "newest first")

		found, total, err := repo.List(ctx, video.Filter{Query: "cats"}, pagination.Normalize("", ""))
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, cats, found[0].ID)

		literal, total, err := repo.List(ctx, video.Filter{Query: "%"}, pagination.Normalize("", ""))
		require.NoError(t, err)
		assert.Equal(t, 1, total, "wildcards are matched literally")
		assert.Equal(t, cats, literal[0].ID)

		byViews, _, err := repo.List(ctx, video.Filter{SortBy: video.SortViews, SortType: "asc"}, pagination.Normalize("", ""))
		require.NoError(t, err)
		assert.Equal(t, []string{cats, dogs}, []string{byViews[0].ID, byViews[1].ID})

		none, total, err := repo.List(ctx, video.Filter{ChannelID: bob}, pagination.Normalize("", ""))
		require.NoError(t, err)
		assert.Empty(t, none)
		assert.Zero(t, total)

		detail, err := repo.FindByID(ctx, hidden)
		require.NoError(t, err)
		assert.False(t, detail.IsPublished)
	})

	t.Run("liked_newest_like_first", func(t *testing.T) {
		pgtest.Reset(t, pool)
		alice := pgtest.Account(t, pool, "alice")
		first := pgtest.Video(t, pool, alice, "first")
		second := pgtest.Video(t, pool, alice, "second")

		likes := like.NewPostgresRepository(pool)
		for _, id := range []string{second, first} {
			_, err := likes.Insert(ctx, like.Key{LikedBy: alice, Kind: like.KindVideo, TargetID: id})
			require.NoError(t, err)
		}

		service := video.NewService(repo, profile.NewPostgresRepository(pool),
			like.NewService(likes, like.Targets{like.KindVideo: repo.Exists}).View(like.KindVideo))

		page, err := service.ListLiked(ctx, alice, pagination.Normalize("", ""))
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, first, page.Items[0].ID)
		assert.Equal(t, 1, page.Items[0].LikesCount)
		assert.True(t, page.Items[0].IsLiked)
		assert.Equal(t, "alice", page.Items[0].Owner.Username)
	})

	t.Run("missing_and_deleted", func(t *testing.T) {
		pgtest.Reset(t, pool)
		alice := pgtest.Account(t, pool, "alice")
		id := pgtest.Video(t, pool, alice, "gone")
		_, err := pool.Exec(ctx, `UPDATE core.video SET deletedat = NOW() WHERE id = $1`, id)
		require.NoError(t, err)

		found, err := repo.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, found)

		_, err = repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
