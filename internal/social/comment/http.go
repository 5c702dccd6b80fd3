// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{videoID}", handler.listComments)
	router.Post("/{videoID}", handler.addComment)

	return router
}

// addCommentRequest is the inbound JSON schema for comment creation.
type addCommentRequest struct {
	Content string `json:"content"`
}

/*
GET /api/v1/comments/{videoID}.

Response:
  - 200: []View: Paginated, newest first
  - 400: INVALID_IDENTIFIER: Malformed id
  - 404: NOT_FOUND: Video does not exist
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), requestutil.ViewerID(request),
		requestutil.Param(request, "videoID"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, page)
}

/*
POST /api/v1/comments/{videoID}.

Request:
  - content: string (1 to 2000 characters)

Response:
  - 201: View: The created comment, likes_count 0
  - 400: VALIDATION_ERROR: Empty or oversized content
  - 401: UNAUTHORIZED: Authentication required
  - 404: NOT_FOUND: Video does not exist
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addCommentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Add(request.Context(), userID, requestutil.Param(request, "videoID"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}
