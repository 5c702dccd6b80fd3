// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for subscriptions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new subscription [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with subscription endpoints.
//
// toggle and subscriptions require an authenticated user and check it
// themselves, so the router can be mounted without RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/c/{channelID}", handler.toggle)
	router.Get("/c/{channelID}", handler.subscribers)
	router.Get("/u/{subscriberID}", handler.subscriptions)

	return router
}

// # Subscription Endpoints

/*
POST /api/v1/subscriptions/c/{channelID}.

Response:
  - 200: Status: {subscribed}
  - 400: SELF_REFERENCE_REJECTED: Subscribing to oneself
  - 400: INVALID_IDENTIFIER: Malformed id
  - 401: UNAUTHORIZED: Authentication required
  - 404: NOT_FOUND: Channel does not exist
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Toggle(request.Context(), userID, requestutil.Param(request, "channelID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

/*
GET /api/v1/subscriptions/c/{channelID}.

Request:
  - page, limit: Pagination window

Response:
  - 200: []profile.Summary with pagination meta
  - 404: NOT_FOUND: Channel does not exist
*/
func (handler *Handler) subscribers(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListSubscribers(request.Context(),
		requestutil.Param(request, "channelID"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, page)
}

/*
GET /api/v1/subscriptions/u/{subscriberID}.

Response:
  - 200: []profile.Summary with pagination meta
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) subscriptions(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredUserID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListSubscriptions(request.Context(),
		requestutil.Param(request, "subscriberID"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, page)
}
