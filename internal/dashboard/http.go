// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/navaadmin/internal/platform/request"
	"github.com/taibuivan/navaadmin/internal/platform/respond"
)

// Handler implements the HTTP layer for the dashboard.
type Handler struct {
	service *Service
}

// NewHandler constructs a new dashboard [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the dashboard endpoint to router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.stats)
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	refresh := requestutil.QueryBool(request, "refresh")

	stats, err := handler.service.Stats(request.Context(), refresh != nil && *refresh)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
