// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package aggregate composes primary entities with their owner summary, a
derived engagement count and a viewer-relative flag.

# Pipeline

 1. Window: the source applies skip/limit and reports the total of the whole
    matching set.
 2. Owner join: one batched lookup for the distinct owner ids on the page.
 3. Derived count: one batched count for the page's entity ids.
 4. Viewer flag: one batched membership check; skipped when the viewer is
    anonymous, in which case every flag is false.
 5. Envelope: items plus the total from step 1.

Steps 2 to 4 are independent and run concurrently. Each stage is optional;
a composer without a counter reports Count 0 and so on.
*/
package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/vidora/internal/users/profile"
	"github.com/taibuivan/vidora/pkg/pagination"
	"github.com/taibuivan/vidora/pkg/slice"
)

// # Stage Contracts

// Source returns one window of entities plus the size of the whole matching set.
type Source[T any] func(ctx context.Context, params pagination.Params) ([]T, int, error)

// OwnerLookup resolves owner summaries for a batch of account ids.
type OwnerLookup interface {
	Summaries(ctx context.Context, ids []string) (map[string]profile.Summary, error)
}

// Counter returns the derived count for each entity id. Ids with no rows may be absent.
type Counter interface {
	CountMany(ctx context.Context, ids []string) (map[string]int, error)
}

// Flagger reports which of the entity ids carry a relation from viewerID.
type Flagger interface {
	FlaggedAmong(ctx context.Context, viewerID string, ids []string) (map[string]bool, error)
}

// # Result

// Item is an entity enriched for one viewer.
type Item[T any] struct {
	Entity T
	// Owner is nil when the owning account no longer exists.
	Owner *profile.Summary
	Count int
	Flag  bool
}

// # Composer

// Composer runs the enrichment pipeline for entities of type T.
type Composer[T any] struct {
	source  Source[T]
	idOf    func(T) string
	ownerOf func(T) string
	owners  OwnerLookup
	counter Counter
	flagger Flagger
}

// New creates a composer over source. idOf extracts the entity id used for
// counts and flags.
func New[T any](source Source[T], idOf func(T) string) *Composer[T] {
	return &Composer[T]{source: source, idOf: idOf}
}

// WithOwner enables the owner join.
func (composer *Composer[T]) WithOwner(ownerOf func(T) string, lookup OwnerLookup) *Composer[T] {
	composer.ownerOf = ownerOf
	composer.owners = lookup
	return composer
}

// WithCount enables the derived count stage.
func (composer *Composer[T]) WithCount(counter Counter) *Composer[T] {
	composer.counter = counter
	return composer
}

// WithViewerFlag enables the viewer flag stage.
func (composer *Composer[T]) WithViewerFlag(flagger Flagger) *Composer[T] {
	composer.flagger = flagger
	return composer
}

/*
Page fetches one window from the source and enriches it.

Parameters:
  - ctx: context.Context
  - viewerID: string ("" for anonymous viewers)
  - params: pagination.Params

Returns:
  - pagination.Page[Item[T]]: Enriched window; Items is never nil
  - error: Source or stage failures
*/
func (composer *Composer[T]) Page(ctx context.Context, viewerID string, params pagination.Params) (pagination.Page[Item[T]], error) {
	entities, total, err := composer.source(ctx, params)
	if err != nil {
		return pagination.Page[Item[T]]{}, err
	}

	items, err := composer.Enrich(ctx, viewerID, entities)
	if err != nil {
		return pagination.Page[Item[T]]{}, err
	}

	return pagination.NewPage(items, total, params), nil
}

// One enriches a single entity (detail views). The source is not consulted.
func (composer *Composer[T]) One(ctx context.Context, viewerID string, entity T) (Item[T], error) {
	items, err := composer.Enrich(ctx, viewerID, []T{entity})
	if err != nil {
		return Item[T]{}, err
	}
	return items[0], nil
}

// Enrich runs stages 2 to 4 over an already fetched slice, preserving order.
func (composer *Composer[T]) Enrich(ctx context.Context, viewerID string, entities []T) ([]Item[T], error) {
	items := make([]Item[T], len(entities))
	if len(entities) == 0 {
		return items, nil
	}

	ids := slice.Unique(entities, composer.idOf)

	var (
		owners map[string]profile.Summary
		counts map[string]int
		flags  map[string]bool
	)

	group, groupCtx := errgroup.WithContext(ctx)

	if composer.owners != nil {
		ownerIDs := slice.Unique(entities, composer.ownerOf)
		group.Go(func() error {
			var err error
			owners, err = composer.owners.Summaries(groupCtx, ownerIDs)
			return err
		})
	}

	if composer.counter != nil {
		group.Go(func() error {
			var err error
			counts, err = composer.counter.CountMany(groupCtx, ids)
			return err
		})
	}

	// Anonymous viewers hold no relations.
	if composer.flagger != nil && viewerID != "" {
		group.Go(func() error {
			var err error
			flags, err = composer.flagger.FlaggedAmong(groupCtx, viewerID, ids)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for i, entity := range entities {
		id := composer.idOf(entity)
		items[i] = Item[T]{Entity: entity, Count: counts[id], Flag: flags[id]}

		if composer.ownerOf != nil {
			if owner, found := owners[composer.ownerOf(entity)]; found {
				items[i].Owner = &owner
			}
		}
	}

	return items, nil
}
