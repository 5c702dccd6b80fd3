// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// Handler implements the HTTP layer for tweets.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tweet [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with tweet endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.feed)
	router.Post("/", handler.create)
	router.Get("/user/{userID}", handler.byUser)

	return router
}

type createTweetRequest struct {
	Content string `json:"content"`
}

// GET /api/v1/tweets.
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Feed(request.Context(), requestutil.ViewerID(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, page)
}

// GET /api/v1/tweets/user/{userID}.
func (handler *Handler) byUser(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ByUser(request.Context(), requestutil.ViewerID(request),
		requestutil.Param(request, "userID"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, page)
}

/*
POST /api/v1/tweets.

Request:
  - content: string (1 to 280 characters)

Response:
  - 201: View
  - 400: VALIDATION_ERROR: Empty or oversized content
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTweetRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Create(request.Context(), userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}
