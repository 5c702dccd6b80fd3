// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

const sampleID = "0190f7a4-3c2e-7b1d-9a55-2f1c3e4d5a6b"

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "content", "Nice video", false},
		{"empty_string", "content", "", true},
		{"whitespace_only", "content", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("content", "").                       // Fails
		MaxLen("title", "abcdef", 5).                  // Fails
		OneOf("sort_type", "sideways", "asc", "desc"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 3)
}

/*
TestIdentifier covers normalization and rejection of malformed references.
*/
func TestIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		isValid bool
	}{
		{"canonical", sampleID, sampleID, true},
		{"upper_case_is_lowered", "0190F7A4-3C2E-7B1D-9A55-2F1C3E4D5A6B", sampleID, true},
		{"surrounding_whitespace", "  " + sampleID + "\n", sampleID, true},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"nil_uuid", "00000000-0000-0000-0000-000000000000", "", false},
		{"braced_form", "{" + sampleID + "}", "", false},
		{"urn_form", "urn:uuid:" + sampleID, "", false},
		{"garbage", "64f0c2b1e4b0a1a2b3c4d5e6", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.Identifier("video_id", tt.raw)
			if !tt.isValid {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestExisting checks the injected existence lookup and fast-fail ordering.
*/
func TestExisting(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid_never_calls_lookup", func(t *testing.T) {
		called := false
		_, err := validate.Existing(ctx, "video_id", "Video", "bad", func(context.Context, string) (bool, error) {
			called = true
			return true, nil
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidIdentifier)
		assert.False(t, called)
	})

	t.Run("missing_entity", func(t *testing.T) {
		_, err := validate.Existing(ctx, "video_id", "Video", sampleID, func(context.Context, string) (bool, error) {
			return false, nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, "Video not found", err.Error())
	})

	t.Run("lookup_error_propagates", func(t *testing.T) {
		boom := apperr.StorageUnavailable(errors.New("dial tcp: refused"))
		_, err := validate.Existing(ctx, "video_id", "Video", sampleID, func(context.Context, string) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, apperr.ErrStorageUnavailable)
	})

	t.Run("found", func(t *testing.T) {
		var seen string
		id, err := validate.Existing(ctx, "video_id", "Video", sampleID, func(_ context.Context, id string) (bool, error) {
			seen = id
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, sampleID, id)
		assert.Equal(t, sampleID, seen)
	})
}

/*
TestHandle verifies channel handle normalization.
*/
func TestHandle(t *testing.T) {
	assert.Equal(t, "tai", validate.Handle("  @Tai "))
	assert.Equal(t, "strasse", validate.Handle("STRASSE"))
	assert.Equal(t, "fi", validate.Handle("ﬁ"))
}
