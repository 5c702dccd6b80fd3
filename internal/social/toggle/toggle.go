// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package toggle implements the generic "flip a relation" operation shared by
likes and subscriptions.

# Algorithm

 1. Delete the relation identified by the uniqueness key.
 2. If a row was removed, the relation is now absent (false).
 3. Otherwise insert it and report present (true).

A CONFLICT from the insert means a concurrent caller created the same row
between steps 1 and 3. The caller's intent (relation present) is already
achieved, so it is reported as success.

# Concurrency

There is no in-process locking. Correctness relies on the storage layer's
uniqueness constraint, which holds across every server process. Under two
opposite concurrent toggles the final state is whichever write commits last.
*/
package toggle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
)

// Relation binds the two store operations the engine needs for one
// relation type keyed by K.
type Relation[K any] struct {
	// Name labels log entries and error wrapping (e.g. "like", "subscription").
	Name string

	// Delete removes the row for key and reports whether one existed.
	Delete func(ctx context.Context, key K) (bool, error)

	// Insert creates the row for key. A duplicate must yield an error
	// matching [apperr.ErrConflict].
	Insert func(ctx context.Context, key K) error
}

/*
Flip toggles the relation identified by key.

Parameters:
  - ctx: context.Context
  - key: K (Uniqueness key of the relation)

Returns:
  - bool: true when the relation is present after the call
  - error: Storage failures other than a recovered insert conflict
*/
func (relation Relation[K]) Flip(ctx context.Context, key K) (bool, error) {
	deleted, err := relation.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%s: delete: %w", relation.Name, err)
	}
	if deleted {
		return false, nil
	}

	if err := relation.Insert(ctx, key); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			ctxutil.GetLogger(ctx).DebugContext(ctx, "toggle_insert_conflict_recovered",
				slog.String("relation", relation.Name),
			)
			return true, nil
		}
		return false, fmt.Errorf("%s: insert: %w", relation.Name, err)
	}

	return true, nil
}
