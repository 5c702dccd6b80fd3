// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for like operations.
type Handler struct {
	service     *Service
	likedVideos http.HandlerFunc
}

// NewHandler constructs a new like [Handler].
//
// likedVideos serves GET /likes/videos; the listing itself lives with the
// video collaborator, which owns the video projection.
func NewHandler(service *Service, likedVideos http.HandlerFunc) *Handler {
	return &Handler{service: service, likedVideos: likedVideos}
}

// Routes returns a [chi.Router] configured with like endpoints.
// Every route requires authentication; mount behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	if handler.likedVideos != nil {
		router.Get("/videos", handler.likedVideos)
	}

	router.Post("/videos/{id}", handler.toggle(KindVideo))
	router.Post("/comments/{id}", handler.toggle(KindComment))
	router.Post("/tweets/{id}", handler.toggle(KindTweet))

	router.Get("/videos/{id}", handler.status(KindVideo))
	router.Get("/comments/{id}", handler.status(KindComment))
	router.Get("/tweets/{id}", handler.status(KindTweet))

	return router
}

// # Like Endpoints

/*
POST /api/v1/likes/{videos|comments|tweets}/{id}.

Description: Flips the caller's like on the target.

Request:
  - id: string (Target UUID)

Response:
  - 200: Status: {liked, likes_count}
  - 400: INVALID_IDENTIFIER: Malformed id
  - 401: UNAUTHORIZED: Authentication required
  - 404: NOT_FOUND: Target does not exist
  - 503: STORAGE_UNAVAILABLE: Retry later
*/
func (handler *Handler) toggle(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		status, err := handler.service.Toggle(request.Context(), userID, kind, requestutil.Param(request, "id"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, status)
	}
}

/*
GET /api/v1/likes/{videos|comments|tweets}/{id}.

Description: Reports whether the caller likes the target.

Response:
  - 200: Status: {liked, likes_count}
  - 400, 401, 404, 503 as for the toggle
*/
func (handler *Handler) status(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		status, err := handler.service.Status(request.Context(), userID, kind, requestutil.Param(request, "id"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, status)
	}
}
