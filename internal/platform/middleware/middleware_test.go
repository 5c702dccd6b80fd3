// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/middleware"
	"github.com/taibuivan/vidora/internal/platform/sec"
)

// stubVerifier maps bearer tokens to the claims they carry.
type stubVerifier map[string]*sec.AuthClaims

func (v stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := v[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

// joinDigester exposes its input so tests can see which source was used.
type joinDigester struct{}

func (joinDigester) Digest(parts ...string) string { return strings.Join(parts, "|") }

func captureViewer(seen *string) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = ctxutil.ViewerID(request.Context())
		writer.WriteHeader(http.StatusNoContent)
	})
}

/*
TestAuthenticate covers anonymous, valid and invalid credentials, and
canonicalization of the token subject.
*/
func TestAuthenticate(t *testing.T) {
	const subject = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
	verifier := stubVerifier{
		"good":     {UserID: subject, Role: "member"},
		"upper":    {UserID: strings.ToUpper(subject), Role: "member"},
		"padded":   {UserID: "  " + subject + " ", Role: "member"},
		"not-uuid": {UserID: "u1", Role: "member"},
		"empty":    {UserID: "", Role: "member"},
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantViewer string
	}{
		{"anonymous", "", http.StatusNoContent, ""},
		{"valid_token", "Bearer good", http.StatusNoContent, subject},
		{"upper_case_subject", "Bearer upper", http.StatusNoContent, subject},
		{"padded_subject", "Bearer padded", http.StatusNoContent, subject},
		{"malformed_subject", "Bearer not-uuid", http.StatusUnauthorized, ""},
		{"empty_subject", "Bearer empty", http.StatusUnauthorized, ""},
		{"invalid_token", "Bearer nope", http.StatusUnauthorized, ""},
		{"malformed_header", "Token good", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var viewer string
			handler := middleware.Authenticate(verifier)(captureViewer(&viewer))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantViewer, viewer)
		})
	}

	t.Run("verifier_claims_untouched", func(t *testing.T) {
		handler := middleware.Authenticate(verifier)(captureViewer(new(string)))
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer upper")
		handler.ServeHTTP(httptest.NewRecorder(), request)

		assert.Equal(t, strings.ToUpper(subject), verifier["upper"].UserID)
	})
}

/*
TestRequireRole rejects anonymous and under-privileged callers.
*/
func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) { writer.WriteHeader(http.StatusOK) })
	guarded := middleware.RequireRole(sec.RoleAdmin)(ok)

	serve := func(claims *sec.AuthClaims) int {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		if claims != nil {
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
		}
		recorder := httptest.NewRecorder()
		guarded.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&sec.AuthClaims{UserID: "u1", Role: "member"}))
	assert.Equal(t, http.StatusOK, serve(&sec.AuthClaims{UserID: "u1", Role: "admin"}))
}

/*
TestSession checks source precedence for the session digest.
*/
func TestSession(t *testing.T) {
	var seen string
	handler := middleware.Session(joinDigester{})(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetSession(request.Context())
	}))

	serve := func(mutate func(*http.Request)) string {
		request := httptest.NewRequest(http.MethodPost, "/views/x", nil)
		request.RemoteAddr = "203.0.113.7:5555"
		request.Header.Set("User-Agent", "player/1.0")
		mutate(request)
		handler.ServeHTTP(httptest.NewRecorder(), request)
		return seen
	}

	assert.Equal(t, "token|abc", serve(func(r *http.Request) { r.Header.Set("X-Session-ID", " abc ") }))
	assert.Equal(t, "token|cookie-1", serve(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "vid_session", Value: "cookie-1"})
	}))
	assert.Equal(t, "fingerprint|203.0.113.7|player/1.0", serve(func(*http.Request) {}))
	assert.Equal(t, "fingerprint|203.0.113.7|player/1.0", serve(func(r *http.Request) {
		r.Header.Set("X-Session-ID", strings.Repeat("x", 500))
	}))
	require.NotEmpty(t, seen)
}
