// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/social/toggle"
)

// Targets maps each like kind to the existence check of its entity table.
type Targets map[Kind]validate.ExistsFunc

// # Service Layer

// Service orchestrates like toggles and like lookups.
type Service struct {
	repo     Repository
	targets  Targets
	relation toggle.Relation[Key]
}

// NewService constructs a new like [Service].
//
// Every kind in [Kinds] must have an entry in targets; a kind without one is
// rejected at request time as unsupported.
func NewService(repo Repository, targets Targets) *Service {
	return &Service{
		repo:    repo,
		targets: targets,
		relation: toggle.Relation[Key]{
			Name:   "like",
			Delete: repo.Delete,
			Insert: func(ctx context.Context, key Key) error {
				_, err := repo.Insert(ctx, key)
				return err
			},
		},
	}
}

/*
Toggle likes the target if the user has not liked it yet, otherwise unlikes it.

Description: Validation runs before any write: the identifier must be well
formed and the target must exist. The returned count is read after the flip.

Parameters:
  - ctx: context.Context
  - userID: string (Authenticated actor)
  - kind: Kind
  - rawTargetID: string (Unvalidated path parameter)

Returns:
  - Status: Liked state and fresh like count
  - error: INVALID_IDENTIFIER, NOT_FOUND, UNAUTHORIZED or storage failures
*/
func (service *Service) Toggle(ctx context.Context, userID string, kind Kind, rawTargetID string) (Status, error) {
	key, err := service.resolve(ctx, userID, kind, rawTargetID)
	if err != nil {
		return Status{}, err
	}

	liked, err := service.relation.Flip(ctx, key)
	if err != nil {
		return Status{}, err
	}

	count, err := service.repo.CountFor(ctx, kind, key.TargetID)
	if err != nil {
		return Status{}, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "like_toggled",
		slog.String("kind", string(kind)),
		slog.String("target_id", key.TargetID),
		slog.Bool("liked", liked),
	)

	return Status{Liked: liked, LikesCount: count}, nil
}

/*
Status reports whether the user likes the target, plus its like count.

Parameters:
  - ctx: context.Context
  - userID: string
  - kind: Kind
  - rawTargetID: string

Returns:
  - Status: Current state
  - error: INVALID_IDENTIFIER, NOT_FOUND, UNAUTHORIZED or storage failures
*/
func (service *Service) Status(ctx context.Context, userID string, kind Kind, rawTargetID string) (Status, error) {
	key, err := service.resolve(ctx, userID, kind, rawTargetID)
	if err != nil {
		return Status{}, err
	}

	liked, err := service.repo.Exists(ctx, key)
	if err != nil {
		return Status{}, err
	}

	count, err := service.repo.CountFor(ctx, kind, key.TargetID)
	if err != nil {
		return Status{}, err
	}

	return Status{Liked: liked, LikesCount: count}, nil
}

// View returns the composer adapter for one kind.
func (service *Service) View(kind Kind) KindView {
	return KindView{repo: service.repo, kind: kind}
}

// resolve validates the actor, kind and target and builds the uniqueness key.
func (service *Service) resolve(ctx context.Context, userID string, kind Kind, rawTargetID string) (Key, error) {
	if userID == "" {
		return Key{}, apperr.Unauthorized("Authentication required")
	}

	exists, supported := service.targets[kind]
	if !supported {
		return Key{}, unsupportedKind()
	}

	targetID, err := validate.Existing(ctx, kind.field(), kind.resource(), rawTargetID, exists)
	if err != nil {
		return Key{}, err
	}

	return Key{LikedBy: userID, Kind: kind, TargetID: targetID}, nil
}

// # Composer Adapter

// KindView serves like counts and viewer flags for one kind to the
// aggregation composer.
type KindView struct {
	repo Repository
	kind Kind
}

// CountMany implements aggregate.Counter.
func (view KindView) CountMany(ctx context.Context, ids []string) (map[string]int, error) {
	return view.repo.CountMany(ctx, view.kind, ids)
}

// FlaggedAmong implements aggregate.Flagger.
func (view KindView) FlaggedAmong(ctx context.Context, viewerID string, ids []string) (map[string]bool, error) {
	return view.repo.LikedAmong(ctx, viewerID, view.kind, ids)
}
