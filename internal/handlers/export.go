// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"slidepress/internal/export"
)

// Export bundles a fully rendered carousel as ?format=pdf or
// ?format=zip and streams it. Slides without a fresh render make the
// whole request fail with the missing indices; rendering is never
// triggered implicitly.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	p, err := a.projectStore.FindByID(projectID)
	if err != nil {
		slog.Error("find project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}

	result, err := export.Export(c, p.Name, format)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Keep a copy in the exports bucket for later download (best-effort).
	if a.storageClient != nil {
		key := fmt.Sprintf("exports/%s/%s", c.ID, result.Filename)
		if err := a.storageClient.UploadExport(r.Context(), key, result.MIMEType, result.Bytes); err != nil {
			slog.Warn("export upload failed", "error", err, "key", key)
		}
	}

	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Bytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Bytes)
}
