// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_ViewerID verifies anonymous and authenticated viewer resolution.
*/
func TestContext_ViewerID(t *testing.T) {
	ctx := context.Background()

	// 1. Anonymous viewer
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Empty(t, ctxutil.ViewerID(ctx))

	// 2. Authenticated viewer
	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "user-123", Role: "member"})
	assert.Equal(t, "user-123", ctxutil.ViewerID(ctx))
	assert.Equal(t, "member", ctxutil.GetAuthUser(ctx).Role)
}

/*
TestContext_Session verifies that the session digest round-trips through context.
*/
func TestContext_Session(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetSession(ctx))

	ctx = ctxutil.WithSession(ctx, "abc123")
	assert.Equal(t, "abc123", ctxutil.GetSession(ctx))
}
