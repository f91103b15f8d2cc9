// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Asset is an uploaded image stored in S3-compatible object storage:
// a template background or a per-slide background override. Metadata
// lives in PostgreSQL; the bytes live in the bucket.
type Asset struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Bucket       string    `json:"bucket"`
	S3Key        string    `json:"s3_key"`
	PreviewS3Key *string   `json:"preview_s3_key,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsImage returns true if the asset is an image type. Only image
// assets may serve as slide backgrounds.
func (a *Asset) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}
