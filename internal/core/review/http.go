// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/navaadmin/internal/platform/request"
	"github.com/taibuivan/navaadmin/internal/platform/respond"
	"github.com/taibuivan/navaadmin/pkg/pagination"
)

// Handler implements the HTTP layer for review moderation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the review moderation endpoints to router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/{id}/approve", handler.approve)
	router.Post("/{id}/reject", handler.reject)
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		Status:      request.URL.Query().Get("status"),
		AudiobookID: request.URL.Query().Get("audiobook_id"),
		Rating:      requestutil.QueryInt(request, "rating"),
	}

	reviews, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.moderate(writer, request, handler.service.Approve)
}

func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	handler.moderate(writer, request, handler.service.Reject)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	handler.moderate(writer, request, handler.service.Delete)
}

func (handler *Handler) moderate(writer http.ResponseWriter, request *http.Request, action func(ctx context.Context, id string) error) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := action(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
