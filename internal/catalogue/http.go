// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package catalogue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tamsinleach/dramatis/internal/platform/request"
	"github.com/tamsinleach/dramatis/internal/platform/respond"
)

// Handler adapts a kind's [Service] to HTTP. All kinds share it; the routes
// are mounted under the kind's plural path by the API server.
type Handler struct {
	service *Service
}

// NewHandler wraps a service for HTTP serving.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the kind's route tree, relative to its plural mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/new", handler.handleNew)
	router.Post("/", handler.handleCreate)
	router.Get("/{uuid}/edit", handler.handleEdit)
	router.Put("/{uuid}", handler.handleUpdate)
	router.Delete("/{uuid}", handler.handleDelete)
	router.Get("/{uuid}", handler.handleShow)
	router.Get("/", handler.handleList)

	return router
}

func (handler *Handler) handleNew(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.New())
}

func (handler *Handler) handleCreate(writer http.ResponseWriter, request *http.Request) {
	sub, err := handler.service.Decode(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), sub)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, created)
}

func (handler *Handler) handleEdit(writer http.ResponseWriter, request *http.Request) {
	sub, err := handler.service.Edit(request.Context(), requestutil.UUID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sub)
}

func (handler *Handler) handleUpdate(writer http.ResponseWriter, request *http.Request) {
	sub, err := handler.service.Decode(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), requestutil.UUID(request), sub)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) handleDelete(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Delete(request.Context(), requestutil.UUID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) handleShow(writer http.ResponseWriter, request *http.Request) {
	document, err := handler.service.Show(request.Context(), requestutil.UUID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, document)
}

func (handler *Handler) handleList(writer http.ResponseWriter, request *http.Request) {
	listing, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listing)
}
