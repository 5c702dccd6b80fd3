// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pgtest starts a disposable PostgreSQL for store integration tests.
//
// # Prerequisites
//
//   - Docker must be running.
//   - OR skip integration tests with: go test -short
//
// The container is migrated with the same data/migrations files the server
// applies at startup.
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/vidora/internal/platform/migration"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Start launches postgres:16-alpine, applies migrations and returns a pool.
// The test is skipped under -short or when no container runtime is reachable.
func Start(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test: skipped with -short")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("vidora"),
		postgresContainer.WithUsername("vidora"),
		postgresContainer.WithPassword("vidora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("integration test: PostgreSQL container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsDir(), quiet), "failed to run migrations")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(pool.Close)

	return pool
}

// Reset empties every table between subtests.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE social.view, social.like, social.tweet, social.comment,
		         core.video, users.subscription, users.account CASCADE
	`)
	require.NoError(t, err)
}

// # Fixtures

// Account inserts a channel account and returns its id.
func Account(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users.account (id, username, email, displayname, avatarurl)
		VALUES ($1, $2, $3, $4, $5)
	`, id, username, username+"@example.test", username, "https://cdn.example.test/"+username+".png")
	require.NoError(t, err)

	return id
}

// DeleteAccount soft-deletes an account.
func DeleteAccount(t *testing.T, pool *pgxpool.Pool, id string) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `UPDATE users.account SET deletedat = NOW() WHERE id = $1`, id)
	require.NoError(t, err)
}

// Video inserts a published video owned by ownerID and returns its id.
func Video(t *testing.T, pool *pgxpool.Pool, ownerID, title string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO core.video (id, ownerid, title, description, videourl, duration)
		VALUES ($1, $2, $3, '', 'https://cdn.example.test/v.mp4', 12.5)
	`, id, ownerID, title)
	require.NoError(t, err)

	return id
}

// Comment inserts a comment on videoID and returns its id.
func Comment(t *testing.T, pool *pgxpool.Pool, videoID, ownerID, content string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO social.comment (id, videoid, ownerid, content) VALUES ($1, $2, $3, $4)
	`, id, videoID, ownerID, content)
	require.NoError(t, err)

	return id
}

// Tweet inserts a tweet and returns its id.
func Tweet(t *testing.T, pool *pgxpool.Pool, ownerID, content string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO social.tweet (id, ownerid, content) VALUES ($1, $2, $3)
	`, id, ownerID, content)
	require.NoError(t, err)

	return id
}

// migrationsDir locates data/migrations relative to this source file.
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
