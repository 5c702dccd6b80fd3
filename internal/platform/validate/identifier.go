// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/vidora/internal/platform/apperr"
)

// ExistsFunc reports whether the entity with the given canonical id exists.
//
// It is injected by the caller so the validator never couples to a specific
// entity type or table.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// # Identifiers

/*
Identifier normalizes and validates an opaque entity reference.

Description: Trims whitespace, rejects empty input, malformed UUIDs and the
nil UUID. It never touches storage, so callers can fail fast before any
round trip.

Parameters:
  - field: string (Name reported in the error details, e.g. "video_id")
  - raw: string

Returns:
  - string: Canonical lower-case UUID
  - error: apperr INVALID_IDENTIFIER
*/
func Identifier(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperr.InvalidIdentifier(field)
	}

	// Only the hyphenated 36-char form is accepted; uuid.Parse is more lenient
	if len(trimmed) != 36 {
		return "", apperr.InvalidIdentifier(field)
	}

	parsed, err := uuid.Parse(trimmed)
	if err != nil || parsed == uuid.Nil {
		return "", apperr.InvalidIdentifier(field)
	}

	return parsed.String(), nil
}

/*
Existing validates raw like [Identifier] and then confirms the entity exists.

Parameters:
  - ctx: context.Context
  - field: string (Error detail field)
  - resource: string (Human readable entity name for NOT_FOUND, e.g. "Video")
  - raw: string
  - exists: ExistsFunc

Returns:
  - string: Canonical identifier
  - error: INVALID_IDENTIFIER, NOT_FOUND, or the lookup's own storage error
*/
func Existing(ctx context.Context, field, resource, raw string, exists ExistsFunc) (string, error) {
	id, err := Identifier(field, raw)
	if err != nil {
		return "", err
	}

	found, err := exists(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperr.NotFound(resource)
	}

	return id, nil
}

// # Handles

// Handle normalizes a channel handle for lookups: NFKC, case folded, trimmed,
// with an optional leading "@" removed.
func Handle(raw string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	// Casers are stateful and must not be shared across goroutines
	return cases.Fold().String(norm.NFKC.String(trimmed))
}
