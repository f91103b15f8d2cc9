// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"slidepress/internal/carousel"
	"slidepress/internal/models"
)

// templateSlideView augments a template slide with resolved URLs for
// its background and preview objects.
type templateSlideView struct {
	models.TemplateSlide
	BackgroundURL string `json:"background_url,omitempty"`
	PreviewURL    string `json:"preview_url,omitempty"`
}

// templateView is the API shape of a template aggregate.
type templateView struct {
	models.CarouselTemplate
	Slides []templateSlideView `json:"slides"`
}

// templateToView resolves object URLs for every slide.
func (a *API) templateToView(t *models.CarouselTemplate) *templateView {
	v := &templateView{CarouselTemplate: *t}
	v.CarouselTemplate.Slides = nil
	for _, sl := range t.Slides {
		sv := templateSlideView{TemplateSlide: sl}
		if a.storageClient != nil {
			if sl.BackgroundKey != nil {
				sv.BackgroundURL = a.storageClient.AssetURL(*sl.BackgroundKey)
			}
			if sl.PreviewKey != nil {
				sv.PreviewURL = a.storageClient.AssetURL(*sl.PreviewKey)
			}
		}
		v.Slides = append(v.Slides, sv)
	}
	return v
}

// TemplateImport creates a template from a multipart upload: one
// background image per slide, in form order. Zones start empty and are
// authored afterwards.
func (a *API) TemplateImport(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(maxSlidesPerDeck)*maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "Upload too large.")
		return
	}

	name := r.FormValue("name")
	if msg := validateName(name, maxTemplateNameLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "At least one background image is required.")
		return
	}
	if len(files) > maxSlidesPerDeck {
		writeError(w, http.StatusBadRequest, "Too many slides.")
		return
	}

	var backgrounds []carousel.ImportedBackground
	for _, header := range files {
		img, msg := readImageUpload(header)
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		s3Key, previewKey, err := a.storeBackground(r, "templates", img)
		if err != nil {
			slog.Error("template background upload failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to upload file.")
			return
		}
		backgrounds = append(backgrounds, carousel.ImportedBackground{
			S3Key:      s3Key,
			PreviewKey: previewKey,
		})
	}

	t := carousel.NewTemplate(projectID, name, backgrounds)
	if err := a.templateStore.Create(t); err != nil {
		slog.Error("create template failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.templateToView(t))
}

// TemplateList lists a project's templates without slides.
func (a *API) TemplateList(w http.ResponseWriter, r *http.Request) {
	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}
	items, err := a.templateStore.ListByProject(projectID)
	if err != nil {
		slog.Error("list templates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": items})
}

// TemplateGet returns a template with its slides and zones.
func (a *API) TemplateGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "templateID")
	if !ok {
		return
	}
	t, err := a.templateStore.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, a.templateToView(t))
}

// TemplateZonesUpdate replaces the zone list on one template slide.
// Carousels already rendered against the old zones keep their caches.
func (a *API) TemplateZonesUpdate(w http.ResponseWriter, r *http.Request) {
	templateID, ok := uuidParam(w, r, "templateID")
	if !ok {
		return
	}
	slideID, ok := uuidParam(w, r, "slideID")
	if !ok {
		return
	}

	var req struct {
		Zones []models.TextZone `json:"zones"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Zones) > maxZonesPerSlide {
		writeError(w, http.StatusBadRequest, "Too many zones.")
		return
	}

	t, err := a.templateStore.FindByID(templateID)
	if err != nil {
		slog.Error("find template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	if err := carousel.UpdateTemplateTextZones(t, slideID, req.Zones); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := a.templateStore.UpdateSlideZones(templateID, slideID, req.Zones); err != nil {
		slog.Error("update slide zones failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, a.templateToView(t))
}

// TemplateRename updates a template's display name.
func (a *API) TemplateRename(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "templateID")
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name, maxTemplateNameLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.templateStore.Rename(id, req.Name); err != nil {
		slog.Error("rename template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TemplateDelete removes a template. Bound carousels keep running with
// the binding cleared; their rendered images stay valid.
func (a *API) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "templateID")
	if !ok {
		return
	}

	t, err := a.templateStore.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	if err := a.templateStore.Delete(id); err != nil {
		slog.Error("delete template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Clean up background objects (best-effort).
	if a.storageClient != nil {
		for _, sl := range t.Slides {
			if sl.BackgroundKey != nil {
				if err := a.storageClient.DeleteAsset(r.Context(), *sl.BackgroundKey); err != nil {
					slog.Warn("s3 background delete failed", "error", err, "key", *sl.BackgroundKey)
				}
			}
			if sl.PreviewKey != nil {
				if err := a.storageClient.DeleteAsset(r.Context(), *sl.PreviewKey); err != nil {
					slog.Warn("s3 preview delete failed", "error", err, "key", *sl.PreviewKey)
				}
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
