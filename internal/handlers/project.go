// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
)

// ProjectCreate creates a new project.
func (a *API) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name, maxProjectNameLen); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := a.projectStore.Create(req.Name)
	if err != nil {
		slog.Error("create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ProjectList lists all projects, newest first.
func (a *API) ProjectList(w http.ResponseWriter, r *http.Request) {
	items, err := a.projectStore.List()
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": items})
}

// ProjectGet returns one project.
func (a *API) ProjectGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}
	p, err := a.projectStore.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ProjectDelete removes a project. Database rows cascade; S3 objects
// are cleaned up best-effort before the row goes away.
func (a *API) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}

	if a.storageClient != nil {
		assets, err := a.assetStore.ListByProject(id)
		if err != nil {
			slog.Warn("list assets for cleanup failed", "error", err, "project", id)
		}
		for _, asset := range assets {
			if err := a.storageClient.DeleteAsset(r.Context(), asset.S3Key); err != nil {
				slog.Warn("s3 asset delete failed", "error", err, "key", asset.S3Key)
			}
			if asset.PreviewS3Key != nil {
				if err := a.storageClient.DeleteAsset(r.Context(), *asset.PreviewS3Key); err != nil {
					slog.Warn("s3 preview delete failed", "error", err, "key", *asset.PreviewS3Key)
				}
			}
		}
	}

	if a.renderCache != nil {
		if c, err := a.carouselStore.FindByProject(id); err == nil && c != nil {
			a.renderCache.InvalidateCarousel(r.Context(), c.ID)
		}
	}

	if err := a.projectStore.Delete(id); err != nil {
		slog.Error("delete project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
