// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for video discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new video [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the public video endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listVideos)
	router.Get("/{videoID}", handler.getVideo)

	return router
}

// # Video Endpoints

/*
GET /api/v1/videos.

Request:
  - q: string (Title or description search)
  - channel: string (Owner UUID)
  - sort_by: string (created_at, views, duration, title)
  - sort_type: string (asc, desc)
  - page, limit: Pagination window

Response:
  - 200: []View: Paginated list of enriched videos
  - 400: VALIDATION_ERROR: Unsupported sort option
*/
func (handler *Handler) listVideos(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Query:     requestutil.Query(request, "q"),
		ChannelID: requestutil.Query(request, "channel"),
		SortBy:    requestutil.Query(request, "sort_by"),
		SortType:  requestutil.Query(request, "sort_type"),
	}

	page, err := handler.service.List(request.Context(), requestutil.ViewerID(request), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, page)
}

/*
GET /api/v1/videos/{videoID}.

Response:
  - 200: View
  - 400: INVALID_IDENTIFIER: Malformed id
  - 404: NOT_FOUND: Video not found or not visible
*/
func (handler *Handler) getVideo(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Get(request.Context(), requestutil.ViewerID(request), requestutil.Param(request, "videoID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
LikedVideos serves GET /api/v1/likes/videos.

Response:
  - 200: []View: The caller's liked videos, most recent like first
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) LikedVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListLiked(request.Context(), userID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, page)
}
