// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/social/subscription"
	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
)

const (
	alice   = "0190f7a4-0000-7000-8000-00000000000a"
	bob     = "0190f7a4-0000-7000-8000-00000000000b"
	missing = "0190f7a4-0000-7000-8000-00000000000f"
)

// mockRepository is a testify mock of subscription.Repository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Exists(ctx context.Context, key subscription.Key) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Insert(ctx context.Context, key subscription.Key) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, key subscription.Key) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ListSubscribers(ctx context.Context, channelID string, params pagination.Params) ([]profile.Summary, int, error) {
	args := m.Called(ctx, channelID, params)
	return args.Get(0).([]profile.Summary), args.Int(1), args.Error(2)
}

func (m *mockRepository) ListSubscriptions(ctx context.Context, subscriberID string, params pagination.Params) ([]profile.Summary, int, error) {
	args := m.Called(ctx, subscriberID, params)
	return args.Get(0).([]profile.Summary), args.Int(1), args.Error(2)
}

func (m *mockRepository) CountSubscribers(ctx context.Context, ids []string) (map[string]int, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockRepository) CountSubscriptions(ctx context.Context, subscriberID string) (int, error) {
	args := m.Called(ctx, subscriberID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) SubscribedAmong(ctx context.Context, subscriberID string, ids []string) (map[string]bool, error) {
	args := m.Called(ctx, subscriberID, ids)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func accountExists(_ context.Context, id string) (bool, error) {
	return id == alice || id == bob, nil
}

/*
TestToggle_SelfReference ensures self subscription fails before any store access.
*/
func TestToggle_SelfReference(t *testing.T) {
	repo := new(mockRepository)
	lookups := 0
	service := subscription.NewService(repo, func(context.Context, string) (bool, error) {
		lookups++
		return true, nil
	})

	for _, raw := range []string{alice, "  " + alice + " ", "0190F7A4-0000-7000-8000-00000000000A"} {
		_, err := service.Toggle(context.Background(), alice, raw)
		assert.ErrorIs(t, err, apperr.ErrSelfReference, raw)
	}

	assert.Zero(t, lookups)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

/*
TestToggle_Flip covers subscribe, unsubscribe and the recovered insert race.
*/
func TestToggle_Flip(t *testing.T) {
	ctx := context.Background()
	key := subscription.Key{SubscriberID: alice, ChannelID: bob}

	t.Run("subscribe", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Delete", mock.Anything, key).Return(false, nil).Once()
		repo.On("Insert", mock.Anything, key).Return(nil).Once()

		status, err := subscription.NewService(repo, accountExists).Toggle(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, status.Subscribed)
		repo.AssertExpectations(t)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Delete", mock.Anything, key).Return(true, nil).Once()

		status, err := subscription.NewService(repo, accountExists).Toggle(ctx, alice, bob)
		require.NoError(t, err)
		assert.False(t, status.Subscribed)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("concurrent_insert_recovered", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Delete", mock.Anything, key).Return(false, nil).Once()
		repo.On("Insert", mock.Anything, key).Return(apperr.Conflict("Duplicate record: insert_subscription")).Once()

		status, err := subscription.NewService(repo, accountExists).Toggle(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, status.Subscribed)
	})

	t.Run("storage_unavailable_surfaces", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Delete", mock.Anything, key).Return(false, apperr.StorageUnavailable(errors.New("EOF"))).Once()

		_, err := subscription.NewService(repo, accountExists).Toggle(ctx, alice, bob)
		assert.ErrorIs(t, err, apperr.ErrStorageUnavailable)
	})
}

/*
TestToggle_Rejections covers the remaining validation failures.
*/
func TestToggle_Rejections(t *testing.T) {
	repo := new(mockRepository)
	service := subscription.NewService(repo, accountExists)

	tests := []struct {
		name       string
		subscriber string
		channel    string
		want       error
	}{
		{"anonymous", "", bob, apperr.ErrUnauthorized},
		{"malformed", alice, "bob", apperr.ErrInvalidIdentifier},
		{"nil_uuid", alice, "00000000-0000-0000-0000-000000000000", apperr.ErrInvalidIdentifier},
		{"missing_channel", alice, missing, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Toggle(context.Background(), tt.subscriber, tt.channel)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

/*
TestListSubscribers wraps the store window into a page envelope.
*/
func TestListSubscribers(t *testing.T) {
	ctx := context.Background()
	params := pagination.Normalize("2", "1")
	repo := new(mockRepository)
	repo.On("ListSubscribers", mock.Anything, bob, params).
		Return([]profile.Summary{{ID: alice, Username: "alice"}}, 3, nil).Once()

	page, err := subscription.NewService(repo, accountExists).ListSubscribers(ctx, bob, params)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Page)

	_, err = subscription.NewService(repo, accountExists).ListSubscribers(ctx, missing, params)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

/*
TestListSubscriptions_Empty keeps an empty set non-nil.
*/
func TestListSubscriptions_Empty(t *testing.T) {
	params := pagination.Normalize("", "")
	repo := new(mockRepository)
	repo.On("ListSubscriptions", mock.Anything, alice, params).Return([]profile.Summary(nil), 0, nil).Once()

	page, err := subscription.NewService(repo, accountExists).ListSubscriptions(context.Background(), alice, params)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}

/*
TestChannelView delegates to the batch store queries.
*/
func TestChannelView(t *testing.T) {
	ctx := context.Background()
	ids := []string{alice, bob}
	repo := new(mockRepository)
	repo.On("CountSubscribers", mock.Anything, ids).Return(map[string]int{bob: 4}, nil)
	repo.On("SubscribedAmong", mock.Anything, alice, ids).Return(map[string]bool{bob: true}, nil)

	view := subscription.NewService(repo, accountExists).ChannelView()

	counts, err := view.CountMany(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 4, counts[bob])

	flags, err := view.FlaggedAmong(ctx, alice, ids)
	require.NoError(t, err)
	assert.True(t, flags[bob])
	assert.False(t, flags[alice])
}
