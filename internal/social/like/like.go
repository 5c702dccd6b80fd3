// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package like records "user likes entity" relations for videos, comments and
tweets.

# Core Responsibility

  - Engagement: A like targets exactly one entity, identified by [Kind] and id.
    At most one like exists per (user, kind, target); storage enforces it.
  - Toggle: Likes are created and removed only through [Service.Toggle].
  - Counting: Per-entity counts and viewer flags are served in batches to the
    aggregation composer through [KindView].
*/
package like

import (
	"time"

	"github.com/taibuivan/vidora/internal/platform/apperr"
)

// # Like Kinds

// Kind discriminates the entity a like points at.
type Kind string

const (
	KindVideo   Kind = "video"
	KindComment Kind = "comment"
	KindTweet   Kind = "tweet"
)

// Kinds lists every supported target kind.
var Kinds = []Kind{KindVideo, KindComment, KindTweet}

// ParseKind validates a raw kind string.
func ParseKind(raw string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == raw {
			return kind, nil
		}
	}
	return "", unsupportedKind()
}

func unsupportedKind() *apperr.AppError {
	return apperr.ValidationError("Unsupported like target",
		apperr.FieldError{Field: "kind", Message: "Must be one of: video, comment, tweet"})
}

// field is the identifier name reported in validation errors.
func (kind Kind) field() string {
	return string(kind) + "_id"
}

// resource is the entity name reported in NOT_FOUND errors.
func (kind Kind) resource() string {
	switch kind {
	case KindVideo:
		return "Video"
	case KindComment:
		return "Comment"
	default:
		return "Tweet"
	}
}

// # Core Entities

// Key is the uniqueness key of a like.
type Key struct {
	LikedBy  string
	Kind     Kind
	TargetID string
}

// Record is a stored like.
type Record struct {
	ID        string    `json:"id"`
	LikedBy   string    `json:"liked_by"`
	Kind      Kind      `json:"kind"`
	TargetID  string    `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Status is the state of one (user, target) pair after a toggle or lookup.
type Status struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}
