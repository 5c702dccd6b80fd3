// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toggle_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/social/toggle"
)

// memorySet stands in for a table with a unique index on the key.
type memorySet struct {
	mu   sync.Mutex
	rows map[string]bool
}

func newMemorySet() *memorySet {
	return &memorySet{rows: map[string]bool{}}
}

func (s *memorySet) delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rows[key] {
		return false, nil
	}
	delete(s.rows, key)
	return true, nil
}

func (s *memorySet) insert(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows[key] {
		return apperr.Conflict("duplicate")
	}
	s.rows[key] = true
	return nil
}

func (s *memorySet) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[key]
}

func (s *memorySet) relation() toggle.Relation[string] {
	return toggle.Relation[string]{Name: "test", Delete: s.delete, Insert: s.insert}
}

/*
TestFlip_Parity verifies that an odd number of toggles leaves the relation present.
*/
func TestFlip_Parity(t *testing.T) {
	ctx := context.Background()
	set := newMemorySet()
	relation := set.relation()

	for i := 1; i <= 7; i++ {
		present, err := relation.Flip(ctx, "u1:c1")
		require.NoError(t, err)

		wantPresent := i%2 == 1
		assert.Equal(t, wantPresent, present, "toggle #%d", i)
		assert.Equal(t, wantPresent, set.has("u1:c1"), "toggle #%d", i)
	}
}

/*
TestFlip_InsertConflictIsSuccess simulates a concurrent identical insert landing
between the delete and the insert.
*/
func TestFlip_InsertConflictIsSuccess(t *testing.T) {
	relation := toggle.Relation[string]{
		Name:   "race",
		Delete: func(context.Context, string) (bool, error) { return false, nil },
		Insert: func(context.Context, string) error {
			return apperr.Conflict("duplicate record")
		},
	}

	present, err := relation.Flip(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, present)
}

/*
TestFlip_Errors ensures storage failures surface and stop the algorithm.
*/
func TestFlip_Errors(t *testing.T) {
	ctx := context.Background()
	unavailable := apperr.StorageUnavailable(errors.New("connection refused"))

	t.Run("delete_failure_skips_insert", func(t *testing.T) {
		inserted := false
		relation := toggle.Relation[string]{
			Name:   "like",
			Delete: func(context.Context, string) (bool, error) { return false, unavailable },
			Insert: func(context.Context, string) error { inserted = true; return nil },
		}

		_, err := relation.Flip(ctx, "k")
		assert.ErrorIs(t, err, apperr.ErrStorageUnavailable)
		assert.False(t, inserted)
	})

	t.Run("insert_failure_surfaces", func(t *testing.T) {
		relation := toggle.Relation[string]{
			Name:   "like",
			Delete: func(context.Context, string) (bool, error) { return false, nil },
			Insert: func(context.Context, string) error { return unavailable },
		}

		present, err := relation.Flip(ctx, "k")
		assert.ErrorIs(t, err, apperr.ErrStorageUnavailable)
		assert.False(t, present)
	})
}

/*
TestFlip_ConcurrentSameDirection checks that racing "like" calls on an absent
relation leave storage consistent with the last reported state.
*/
func TestFlip_ConcurrentSameDirection(t *testing.T) {
	ctx := context.Background()
	set := newMemorySet()
	relation := set.relation()

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := relation.Flip(ctx, "u1:v1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Each flip either created, removed, or recovered a conflict; the key
	// holds exactly one row or none, never a duplicate.
	present, err := relation.Flip(ctx, "u1:v1")
	require.NoError(t, err)
	assert.Equal(t, present, set.has("u1:v1"))
}
