// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/navaadmin/internal/platform/request"
	"github.com/taibuivan/navaadmin/internal/platform/respond"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
)

// multipartOverhead is the room left for boundaries and text fields.
const multipartOverhead = 1 << 20

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAudiobookRoutes mounts the routes under /audiobooks/{id}/chapters.
func (handler *Handler) RegisterAudiobookRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.upload)
	router.Post("/bulk", handler.bulkUpload)
	router.Put("/order", handler.reorder)
}

// RegisterRoutes mounts the routes under /chapters.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	router.Get("/{id}/url", handler.playbackURL)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	audiobookID, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.List(request.Context(), audiobookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	audiobookID, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := requestutil.ParseMultipart(writer, request, handler.service.options.MaxFileBytes+multipartOverhead)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer form.RemoveAll()

	header, err := requestutil.FormFile(form, FieldFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	isPreview, _ := strconv.ParseBool(requestutil.FormValue(form, FieldPreview))

	chapter, err := handler.service.Upload(request.Context(), audiobookID,
		storage.FileFromMultipart(header), requestutil.FormValue(form, FieldTitle), isPreview)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, chapter)
}

/*
bulkUpload accepts many audio files under the "files" field.

The multipart parser spools large parts to disk, so only the file being
processed is ever read into memory.
*/
func (handler *Handler) bulkUpload(writer http.ResponseWriter, request *http.Request) {
	audiobookID, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options := handler.service.options
	bodyLimit := int64(options.MaxFiles)*options.MaxFileBytes + multipartOverhead

	form, err := requestutil.ParseMultipart(writer, request, bodyLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer form.RemoveAll()

	headers := form.File[FieldFiles]
	files := make([]*PendingFile, len(headers))
	for i, header := range headers {
		files[i] = NewPendingFile(storage.FileFromMultipart(header))
	}

	report, err := handler.service.BulkUpload(request.Context(), audiobookID, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) reorder(writer http.ResponseWriter, request *http.Request) {
	audiobookID, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Entries []OrderEntry `json:"entries"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.Reorder(request.Context(), audiobookID, input.Entries)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
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

	chapter, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
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

func (handler *Handler) playbackURL(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	signedURL, err := handler.service.PlaybackURL(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"url": signedURL})
}
