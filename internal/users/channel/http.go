// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
)

// Handler implements the HTTP layer for channels.
type Handler struct {
	service *Service
}

// NewHandler constructs a new channel [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with channel endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{username}", handler.getProfile)
	router.Get("/{channelID}/stats", handler.getStats)

	return router
}

/*
GET /api/v1/channels/{username}.

Response:
  - 200: Profile
  - 404: NOT_FOUND: No live channel with that handle
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.Profile(request.Context(), requestutil.ViewerID(request), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

/*
GET /api/v1/channels/{channelID}/stats.

Response:
  - 200: Stats
  - 400: INVALID_IDENTIFIER: Malformed id
  - 404: NOT_FOUND: Channel does not exist
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context(), requestutil.Param(request, "channelID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
