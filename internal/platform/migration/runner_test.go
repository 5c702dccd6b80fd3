// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN verifies scheme rewriting for golang-migrate.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/vidora", "pgx5://u:p@localhost:5432/vidora"},
		{"postgresql://localhost/vidora?sslmode=disable", "pgx5://localhost/vidora?sslmode=disable"},
		{"pgx5://localhost/vidora", "pgx5://localhost/vidora"},
		{"host=localhost dbname=vidora", "host=localhost dbname=vidora"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
	}
}
