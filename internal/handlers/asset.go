// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"slidepress/internal/imaging"
	"slidepress/internal/models"
)

const (
	// maxUploadSize is the maximum allowed image upload size (50 MB).
	maxUploadSize = 50 << 20
)

// allowedImageTypes defines MIME types accepted for backgrounds.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// uploadedImage is one validated multipart image, read into memory.
type uploadedImage struct {
	data         []byte
	contentType  string
	originalName string
}

// readImageUpload validates and buffers one multipart image file.
// Returns a message suitable for a 4xx response when the file is
// rejected.
func readImageUpload(header *multipart.FileHeader) (*uploadedImage, string) {
	if header.Size > maxUploadSize {
		return nil, "File too large. Maximum size is 50 MB."
	}

	file, err := header.Open()
	if err != nil {
		return nil, "Failed to read file."
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, "Failed to read file."
	}
	if len(data) > maxUploadSize {
		return nil, "File too large. Maximum size is 50 MB."
	}

	// Detect content type by sniffing, never by trusting the header.
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	contentType := http.DetectContentType(data[:sniffLen])
	if !allowedImageTypes[contentType] {
		return nil, fmt.Sprintf("File type %q is not allowed.", contentType)
	}

	return &uploadedImage{
		data:         data,
		contentType:  contentType,
		originalName: header.Filename,
	}, ""
}

// storeBackground uploads an original image plus its generated preview
// and returns the object keys. Preview generation is best-effort.
func (a *API) storeBackground(r *http.Request, prefix string, img *uploadedImage) (s3Key string, previewKey *string, err error) {
	now := time.Now()
	fileID := uuid.New().String()
	ext := filepath.Ext(img.originalName)
	if ext == "" {
		ext = extensionFromType(img.contentType)
	}
	s3Key = fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	if err := a.storageClient.UploadAsset(ctx, s3Key, img.contentType, bytes.NewReader(img.data), int64(len(img.data))); err != nil {
		return "", nil, err
	}

	preview, err := imaging.GeneratePreview(img.data)
	if err != nil {
		slog.Warn("preview generation failed", "error", err, "key", s3Key)
		return s3Key, nil, nil
	}
	pk := fmt.Sprintf("%s/%d/%02d/%s_preview.webp", prefix, now.Year(), now.Month(), fileID)
	if err := a.storageClient.UploadAsset(ctx, pk, preview.ContentType, bytes.NewReader(preview.Data), int64(len(preview.Data))); err != nil {
		slog.Warn("preview upload failed", "error", err, "key", pk)
		return s3Key, nil, nil
	}
	return s3Key, &pk, nil
}

// AssetUpload handles a background image upload for slide overrides.
func (a *API) AssetUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 50 MB.")
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}

	img, msg := readImageUpload(header)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s3Key, previewKey, err := a.storeBackground(r, "assets", img)
	if err != nil {
		slog.Error("s3 upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	asset := &models.Asset{
		ProjectID:    projectID,
		Filename:     filepath.Base(s3Key),
		OriginalName: img.originalName,
		ContentType:  img.contentType,
		SizeBytes:    int64(len(img.data)),
		Bucket:       a.storageClient.AssetsBucket(),
		S3Key:        s3Key,
		PreviewS3Key: previewKey,
	}
	created, err := a.assetStore.Create(asset)
	if err != nil {
		slog.Error("asset db insert failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "Failed to save file metadata.")
		return
	}

	resp := map[string]any{
		"id":       created.ID,
		"url":      a.storageClient.AssetURL(created.S3Key),
		"filename": created.OriginalName,
		"type":     created.ContentType,
		"size":     created.SizeBytes,
	}
	if created.PreviewS3Key != nil {
		resp["preview_url"] = a.storageClient.AssetURL(*created.PreviewS3Key)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// AssetList returns a project's uploaded backgrounds.
func (a *API) AssetList(w http.ResponseWriter, r *http.Request) {
	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}
	items, err := a.assetStore.ListByProject(projectID)
	if err != nil {
		slog.Error("list assets failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": items})
}

// AssetDelete removes an asset from both S3 and the database.
func (a *API) AssetDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "assetID")
	if !ok {
		return
	}

	deleted, err := a.assetStore.Delete(id)
	if err != nil {
		slog.Error("asset db delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if deleted == nil {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}

	// Clean up S3 objects (best-effort, don't fail the request).
	if a.storageClient != nil {
		if err := a.storageClient.DeleteAsset(r.Context(), deleted.S3Key); err != nil {
			slog.Warn("s3 original delete failed", "error", err, "key", deleted.S3Key)
		}
		if deleted.PreviewS3Key != nil {
			if err := a.storageClient.DeleteAsset(r.Context(), *deleted.PreviewS3Key); err != nil {
				slog.Warn("s3 preview delete failed", "error", err, "key", *deleted.PreviewS3Key)
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
