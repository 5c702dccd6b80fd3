// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/social/comment"
	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
)

const (
	videoID   = "0190f7a4-3c2e-7b1d-9a55-2f1c3e4d5a6b"
	missingID = "0190f7a4-3c2e-7b1d-9a55-2f1c3e4d5a6f"
	author    = "0190f7a4-0000-7000-8000-00000000000a"
	reader    = "0190f7a4-0000-7000-8000-00000000000b"
)

// memoryRepository keeps comments newest first.
type memoryRepository struct {
	mu       sync.Mutex
	comments []*comment.Comment
}

func (m *memoryRepository) ListByVideo(_ context.Context, id string, params pagination.Params) ([]*comment.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*comment.Comment
	for _, c := range m.comments {
		if c.VideoID == id {
			matched = append(matched, c)
		}
	}
	if params.Skip >= len(matched) {
		return nil, len(matched), nil
	}
	return matched[params.Skip:min(params.Skip+params.Limit, len(matched))], len(matched), nil
}

func (m *memoryRepository) Create(_ context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.comments = append([]*comment.Comment{c}, m.comments...)
	return nil
}

func (m *memoryRepository) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type owners struct{}

func (owners) Summaries(_ context.Context, ids []string) (map[string]profile.Summary, error) {
	found := map[string]profile.Summary{}
	for _, id := range ids {
		if id == author {
			found[id] = profile.Summary{ID: author, Username: "author"}
		}
	}
	return found, nil
}

// likes: every comment has two likes, liked by reader only.
type likes struct{ calls int }

func (l *likes) CountMany(_ context.Context, ids []string) (map[string]int, error) {
	l.calls++
	counts := map[string]int{}
	for _, id := range ids {
		counts[id] = 2
	}
	return counts, nil
}

func (l *likes) FlaggedAmong(_ context.Context, viewer string, ids []string) (map[string]bool, error) {
	l.calls++
	flags := map[string]bool{}
	for _, id := range ids {
		flags[id] = viewer == reader
	}
	return flags, nil
}

func videoExists(_ context.Context, id string) (bool, error) { return id == videoID, nil }

/*
TestAdd_ReturnsEnrichedZeroLikes creates a comment and checks the response shape.
*/
func TestAdd_ReturnsEnrichedZeroLikes(t *testing.T) {
	engagement := &likes{}
	service := comment.NewService(&memoryRepository{}, owners{}, engagement, videoExists)

	view, err := service.Add(context.Background(), author, videoID, "  first!  ")
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "first!", view.Content)
	assert.Equal(t, 0, view.LikesCount)
	assert.False(t, view.IsLiked)
	require.NotNil(t, view.Owner)
	assert.Equal(t, "author", view.Owner.Username)
	assert.Zero(t, engagement.calls)
}

/*
TestAdd_Rejections validates the actor, content and target.
*/
func TestAdd_Rejections(t *testing.T) {
	service := comment.NewService(&memoryRepository{}, owners{}, &likes{}, videoExists)

	tests := []struct {
		name    string
		user    string
		video   string
		content string
		want    error
	}{
		{"anonymous", "", videoID, "hi", apperr.ErrUnauthorized},
		{"blank", author, videoID, "   ", apperr.ErrValidation},
		{"too_long", author, videoID, strings.Repeat("é", 2001), apperr.ErrValidation},
		{"malformed_video", author, "v1", "hi", apperr.ErrInvalidIdentifier},
		{"missing_video", author, missingID, "hi", apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Add(context.Background(), tt.user, tt.video, tt.content)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

/*
TestList_ViewerRelative compares an identified reader with an anonymous one.
*/
func TestList_ViewerRelative(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}
	service := comment.NewService(repo, owners{}, &likes{}, videoExists)

	for _, text := range []string{"one", "two", "three"} {
		_, err := service.Add(ctx, author, videoID, text)
		require.NoError(t, err)
	}

	page, err := service.List(ctx, reader, videoID, pagination.Normalize("1", "2"))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "three", page.Items[0].Content)
	assert.True(t, page.Items[0].IsLiked)
	assert.Equal(t, 2, page.Items[0].LikesCount)

	anonymous, err := service.List(ctx, "", videoID, pagination.Normalize("2", "2"))
	require.NoError(t, err)
	require.Len(t, anonymous.Items, 1)
	assert.False(t, anonymous.Items[0].IsLiked)

	_, err = service.List(ctx, "", missingID, pagination.Normalize("", ""))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

/*
TestHandler_AddComment posts through the router.
*/
func TestHandler_AddComment(t *testing.T) {
	router := comment.NewHandler(comment.NewService(&memoryRepository{}, owners{}, &likes{}, videoExists)).Routes()

	post := func(body string, userID string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodPost, "/"+videoID, bytes.NewBufferString(body))
		if userID != "" {
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID}))
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := post(`{"content":"nice"}`, author)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "nice", body.Data["content"])
	assert.EqualValues(t, 0, body.Data["likes_count"])
	assert.Equal(t, false, body.Data["is_liked"])

	assert.Equal(t, http.StatusBadRequest, post(`{"content":"x","extra":1}`, author).Code)
	assert.Equal(t, http.StatusUnauthorized, post(`{"content":"x"}`, "").Code)
}
