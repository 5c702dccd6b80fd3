// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/social/view"
)

const (
	videoID   = "0190f7a4-3c2e-7b1d-9a55-2f1c3e4d5a6b"
	missingID = "0190f7a4-3c2e-7b1d-9a55-2f1c3e4d5a6f"
	viewerA   = "0190f7a4-0000-7000-8000-00000000000a"
	sessionA  = "5f0c1e2d"
	sessionB  = "9a8b7c6d"
)

// memoryLedger emulates social.view and the counter column.
type memoryLedger struct {
	mu      sync.Mutex
	rows    map[view.Key]bool
	counter map[string]int64
	calls   int
	failure error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{rows: map[view.Key]bool{}, counter: map[string]int64{}}
}

func (m *memoryLedger) Record(_ context.Context, key view.Key) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failure != nil {
		return false, m.failure
	}
	if m.rows[key] {
		return false, nil
	}
	m.rows[key] = true
	m.counter[key.VideoID]++
	return true, nil
}

func (m *memoryLedger) Reconcile(_ context.Context, id string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var actual int64
	for key := range m.rows {
		if key.VideoID == id {
			actual++
		}
	}
	changed := m.counter[id] != actual
	m.counter[id] = actual
	return actual, changed, nil
}

func (m *memoryLedger) ReconcileAll(ctx context.Context) (int64, error) {
	var repaired int64
	for _, id := range []string{videoID} {
		_, changed, _ := m.Reconcile(ctx, id)
		if changed {
			repaired++
		}
	}
	return repaired, nil
}

func (m *memoryLedger) count(id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter[id]
}

// stubCache is a scripted SeenCache.
type stubCache struct {
	mu         sync.Mutex
	seen       map[view.Key]bool
	failure    error
	remembered int
}

func (c *stubCache) Seen(_ context.Context, key view.Key) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure != nil {
		return false, c.failure
	}
	return c.seen[key], nil
}

func (c *stubCache) Remember(_ context.Context, key view.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure != nil {
		return c.failure
	}
	if c.seen == nil {
		c.seen = map[view.Key]bool{}
	}
	c.seen[key] = true
	c.remembered++
	return nil
}

func videoExists(_ context.Context, id string) (bool, error) {
	return id == videoID, nil
}

/*
TestRecordView_CountsOncePerSession walks the dedupe rules without a cache.
*/
func TestRecordView_CountsOncePerSession(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	service := view.NewService(ledger, nil, videoExists)

	steps := []struct {
		name    string
		viewer  string
		session string
		counted bool
	}{
		{"first_view", viewerA, sessionA, true},
		{"repeat_same_session", viewerA, sessionA, false},
		{"new_session", viewerA, sessionB, true},
		{"anonymous_first", "", sessionA, true},
		{"anonymous_repeat", "", sessionA, false},
	}

	for _, step := range steps {
		result, err := service.RecordView(ctx, videoID, step.viewer, step.session)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.counted, result.Counted, step.name)
	}
	assert.Equal(t, int64(3), ledger.count(videoID))
}

/*
TestRecordView_ConcurrentIdentical ensures racing identical views count once.
*/
func TestRecordView_ConcurrentIdentical(t *testing.T) {
	ledger := newMemoryLedger()
	service := view.NewService(ledger, nil, videoExists)

	const callers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		counted int
	)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			result, err := service.RecordView(context.Background(), videoID, viewerA, sessionA)
			assert.NoError(t, err)
			if result.Counted {
				mu.Lock()
				counted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, counted)
	assert.Equal(t, int64(1), ledger.count(videoID))
}

/*
TestRecordView_Rejections covers identifier, existence and session checks.
*/
func TestRecordView_Rejections(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	service := view.NewService(ledger, nil, videoExists)

	tests := []struct {
		name    string
		id      string
		session string
		want    error
	}{
		{"malformed", "not-a-uuid", sessionA, apperr.ErrInvalidIdentifier},
		{"empty", "  ", sessionA, apperr.ErrInvalidIdentifier},
		{"missing_video", missingID, sessionA, apperr.ErrNotFound},
		{"no_session", videoID, "", apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.RecordView(ctx, tt.id, viewerA, tt.session)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, ledger.calls)
}

/*
TestRecordView_CacheShortCircuits verifies that a remembered view never
reaches the ledger and that only confirmed views are remembered.
*/
func TestRecordView_CacheShortCircuits(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	cache := &stubCache{}
	service := view.NewService(ledger, cache, videoExists)

	first, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	require.NoError(t, err)
	assert.True(t, first.Counted)

	second, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	require.NoError(t, err)
	assert.False(t, second.Counted)

	assert.Equal(t, 1, ledger.calls)
	assert.Equal(t, 1, cache.remembered)
}

/*
TestRecordView_CacheFailureFallsBack keeps counting when the cache is down.
*/
func TestRecordView_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	cache := &stubCache{failure: errors.New("redis: connection refused")}
	service := view.NewService(ledger, cache, videoExists)

	first, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	require.NoError(t, err)
	assert.True(t, first.Counted)

	second, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	require.NoError(t, err)
	assert.False(t, second.Counted)

	assert.Equal(t, 2, ledger.calls)
}

/*
TestRecordView_LedgerFailureNotRemembered ensures failed writes are retried.
*/
func TestRecordView_LedgerFailureNotRemembered(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	ledger.failure = apperr.StorageUnavailable(errors.New("timeout"))
	cache := &stubCache{}
	service := view.NewService(ledger, cache, videoExists)

	_, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	assert.ErrorIs(t, err, apperr.ErrStorageUnavailable)
	assert.Zero(t, cache.remembered)

	ledger.failure = nil
	result, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	require.NoError(t, err)
	assert.True(t, result.Counted)
}

/*
TestReconcile repairs a drifted counter.
*/
func TestReconcile(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	service := view.NewService(ledger, nil, videoExists)

	_, err := service.RecordView(ctx, videoID, viewerA, sessionA)
	require.NoError(t, err)
	ledger.counter[videoID] = 42

	result, err := service.Reconcile(ctx, videoID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ViewCount)
	assert.Equal(t, int64(1), result.Repaired)

	again, err := service.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Repaired)

	_, err = service.Reconcile(ctx, "bad")
	assert.ErrorIs(t, err, apperr.ErrInvalidIdentifier)
}
