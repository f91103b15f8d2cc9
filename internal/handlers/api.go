// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for SlidePress.
// Handlers are grouped by concern (projects, templates, carousels,
// exports) and receive their dependencies through the API struct.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidepress/internal/cache"
	"slidepress/internal/carousel"
	"slidepress/internal/models"
	"slidepress/internal/storage"
	"slidepress/internal/store"
)

// API groups all HTTP handlers and their dependencies.
type API struct {
	projectStore  *store.ProjectStore
	assetStore    *store.AssetStore
	templateStore *store.TemplateStore
	carouselStore *store.CarouselStore
	storageClient *storage.Client
	renderCache   *cache.RenderCache
	renderer      *carousel.Renderer
}

// NewAPI creates the handler group. storageClient may be nil if S3 is
// not configured; renderCache may be nil if Valkey is not configured.
// Features depending on an absent service respond 503.
func NewAPI(projectStore *store.ProjectStore, assetStore *store.AssetStore, templateStore *store.TemplateStore, carouselStore *store.CarouselStore, storageClient *storage.Client, renderCache *cache.RenderCache, renderer *carousel.Renderer) *API {
	return &API{
		projectStore:  projectStore,
		assetStore:    assetStore,
		templateStore: templateStore,
		carouselStore: carouselStore,
		storageClient: storageClient,
		renderCache:   renderCache,
		renderer:      renderer,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain error types to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var ive *models.InvariantViolationError
	var nre *models.NotRenderedError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ive):
		writeError(w, http.StatusConflict, ive.Error())
	case errors.As(err, &nre):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   nre.Error(),
			"missing": nre.Missing,
		})
	default:
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// uuidParam parses a UUID chi route parameter. Writes a 400 and
// returns false when the value is malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst. Writes a 400 and
// returns false on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
