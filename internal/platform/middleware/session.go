// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
)

// SessionDigester hashes raw session material into a storable identifier.
type SessionDigester interface {
	Digest(parts ...string) string
}

// Session derives the viewing session identifier for every request.
//
// # Sources (first match wins)
//  1. X-Session-ID header supplied by the client player.
//  2. The vid_session cookie.
//  3. A fingerprint of client IP and User-Agent.
//
// The result is always a keyed digest; raw header values and IPs are never
// placed in the context. Client tokens and fingerprints are digested under
// different labels so the two namespaces cannot collide.
func Session(digester SessionDigester) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var digest string
			if token := clientSessionToken(request); token != "" {
				digest = digester.Digest("token", token)
			} else {
				digest = digester.Digest("fingerprint", RealIP(request), request.UserAgent())
			}

			ctx := ctxutil.WithSession(request.Context(), digest)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// clientSessionToken returns a bounded, non-empty client session token or "".
func clientSessionToken(request *http.Request) string {
	token := strings.TrimSpace(request.Header.Get(constants.HeaderXSessionID))
	if token == "" {
		if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
			token = strings.TrimSpace(cookie.Value)
		}
	}

	if len(token) > constants.MaxSessionIDLength {
		return ""
	}
	return token
}
