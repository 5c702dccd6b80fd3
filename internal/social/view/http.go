// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the view ledger.
type Handler struct {
	service *Service
}

// NewHandler constructs a new view [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public view endpoints. Requires the Session middleware.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{videoID}", handler.recordView)
	return router
}

// AdminRoutes returns the counter repair endpoints. Mount behind an admin role check.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/reconcile", handler.reconcileAll)
	router.Post("/reconcile/{videoID}", handler.reconcile)
	return router
}

// # View Endpoints

/*
POST /api/v1/views/{videoID}.

Description: Records a view for the caller's viewing session. Authentication
is optional; anonymous views are deduplicated per session.

Response:
  - 200: Result: {counted}
  - 400: INVALID_IDENTIFIER: Malformed id
  - 404: NOT_FOUND: Video does not exist
  - 503: STORAGE_UNAVAILABLE: Retry later
*/
func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	result, err := handler.service.RecordView(ctx,
		requestutil.Param(request, "videoID"),
		requestutil.ViewerID(request),
		ctxutil.GetSession(ctx),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/admin/views/reconcile/{videoID}.

Response:
  - 200: ReconcileResult
  - 404: NOT_FOUND: Video does not exist
*/
func (handler *Handler) reconcile(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Reconcile(request.Context(), requestutil.Param(request, "videoID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// POST /api/v1/admin/views/reconcile.
func (handler *Handler) reconcileAll(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.ReconcileAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
