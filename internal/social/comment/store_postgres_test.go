// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/postgres/pgtest"
	"github.com/taibuivan/vidora/internal/social/comment"
	"github.com/taibuivan/vidora/internal/social/like"
	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
	"github.com/taibuivan/vidora/pkg/uuid"
)

/*
TestPostgresRepository wires the comment service to real stores.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()
	pgtest.Reset(t, pool)

	alice := pgtest.Account(t, pool, "alice")
	bob := pgtest.Account(t, pool, "bob")
	clip := pgtest.Video(t, pool, alice, "clip")

	repo := comment.NewPostgresRepository(pool)
	likes := like.NewPostgresRepository(pool)
	likeService := like.NewService(likes, like.Targets{like.KindComment: repo.Exists})
	service := comment.NewService(repo, profile.NewPostgresRepository(pool),
		likeService.View(like.KindComment), video.NewPostgresRepository(pool).Exists)

	created, err := service.Add(ctx, bob, clip, "hello")
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	older := pgtest.Comment(t, pool, clip, alice, "earlier")
	_, err = pool.Exec(ctx, `UPDATE social.comment SET createdat = createdat - INTERVAL '1 hour' WHERE id = $1`, older)
	require.NoError(t, err)

	status, err := likeService.Toggle(ctx, alice, like.KindComment, created.ID)
	require.NoError(t, err)
	assert.True(t, status.Liked)

	page, err := service.List(ctx, alice, clip, pagination.Normalize("", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)

	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.Items[0].LikesCount)
	assert.True(t, page.Items[0].IsLiked)
	assert.Equal(t, "bob", page.Items[0].Owner.Username)

	assert.Equal(t, older, page.Items[1].ID)
	assert.Zero(t, page.Items[1].LikesCount)

	orphan := &comment.Comment{ID: uuid.New(), VideoID: uuid.New(), OwnerID: alice, Content: "lost"}
	assert.ErrorIs(t, repo.Create(ctx, orphan), apperr.ErrNotFound)

	pgtest.DeleteAccount(t, pool, bob)
	page, err = service.List(ctx, "", clip, pagination.Normalize("", ""))
	require.NoError(t, err)
	assert.Nil(t, page.Items[0].Owner)
	assert.False(t, page.Items[0].IsLiked)
}
