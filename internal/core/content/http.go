// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/navaadmin/internal/platform/request"
	"github.com/taibuivan/navaadmin/internal/platform/respond"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/pkg/pagination"
	"github.com/taibuivan/navaadmin/pkg/query"
)

const (
	coverBodyLimit = maxCoverBytes + 1<<20
	ebookBodyLimit = maxEbookBytes + 1<<20
)

// Handler implements the HTTP layer for content management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes mounts the content endpoints.

Chapter routes live under /{id}/chapters and are mounted by the chapter
handler.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	router.Post("/{id}/status", handler.transition)
	router.Patch("/{id}/flags", handler.setFlags)

	router.Post("/{id}/cover", handler.uploadCover)
	router.Post("/{id}/ebook", handler.uploadEbook)
	router.Get("/{id}/ebook-url", handler.ebookURL)

	router.Put("/{id}/creators", handler.replaceCreators)
	router.Put("/{id}/categories", handler.replaceCategories)
	router.Put("/{id}/book-metadata", handler.upsertBookMetadata)
	router.Put("/{id}/music-metadata", handler.upsertMusicMetadata)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()
	filter := Filter{
		Statuses:    query.StringSlice(values.Get("status")),
		ContentType: values.Get("type"),
		Featured:    requestutil.QueryBool(request, "featured"),
		Query:       values.Get("q"),
	}

	items, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	audiobook, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, audiobook)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	audiobook, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, audiobook)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) transition(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input TransitionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	audiobook, err := handler.service.Transition(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, audiobook)
}

func (handler *Handler) setFlags(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input FlagsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	audiobook, err := handler.service.SetFlags(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, audiobook)
}

// # Files

func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	handler.upload(writer, request, coverBodyLimit, handler.service.UploadCover)
}

func (handler *Handler) uploadEbook(writer http.ResponseWriter, request *http.Request) {
	handler.upload(writer, request, ebookBodyLimit, handler.service.UploadEbook)
}

func (handler *Handler) upload(
	writer http.ResponseWriter,
	request *http.Request,
	bodyLimit int64,
	store func(context.Context, string, storage.File) (*Audiobook, error),
) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := requestutil.ParseMultipart(writer, request, bodyLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer form.RemoveAll()

	header, err := requestutil.FormFile(form, "file")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	audiobook, err := store(request.Context(), id, storage.FileFromMultipart(header))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, audiobook)
}

func (handler *Handler) ebookURL(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	signedURL, err := handler.service.EbookURL(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"url": signedURL})
}

// # Relations

func (handler *Handler) replaceCreators(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Creators []CreatorCredit `json:"creators"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReplaceCreators(request.Context(), id, input.Creators); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) replaceCategories(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		CategoryIDs []string `json:"category_ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReplaceCategories(request.Context(), id, input.CategoryIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) upsertBookMetadata(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BookMetadata
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	metadata, err := handler.service.UpsertBookMetadata(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, metadata)
}

func (handler *Handler) upsertMusicMetadata(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MusicMetadata
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	metadata, err := handler.service.UpsertMusicMetadata(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, metadata)
}
