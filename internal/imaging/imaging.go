// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging wraps libvips for the upload pipeline: probing
// uploaded backgrounds and producing the small WebP previews the
// editor grid shows. Full-resolution originals go to storage
// untouched; the renderer composites from those, never from previews.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

const (
	// PreviewWidth is the target width of editor preview thumbnails.
	PreviewWidth = 320

	// previewQuality is the WebP quality used for previews.
	previewQuality = 75
)

// Preview holds one generated editor thumbnail ready for upload.
type Preview struct {
	Width       int    // Actual output width
	Height      int    // Actual output height
	Data        []byte // WebP-encoded image bytes
	ContentType string // Always "image/webp"
}

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// Probe returns the pixel dimensions of an uploaded image without
// keeping it decoded. Used to reject degenerate uploads before
// anything is stored.
func Probe(data []byte) (width, height int, err error) {
	img, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return 0, 0, fmt.Errorf("imaging: probe failed: %w", err)
	}
	defer img.Close()
	return img.Width(), img.Height(), nil
}

// GeneratePreview creates the editor thumbnail for an uploaded
// background. The preview is capped at the original's width to avoid
// upscaling, auto-rotated per EXIF, and stripped of metadata.
func GeneratePreview(original []byte) (*Preview, error) {
	origWidth, _, err := Probe(original)
	if err != nil {
		return nil, err
	}

	targetWidth := PreviewWidth
	if origWidth < targetWidth {
		targetWidth = origWidth
	}

	img, err := vips.NewThumbnailFromBuffer(original, targetWidth, 0, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: thumbnail %dpx: %w", targetWidth, err)
	}
	defer img.Close()

	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = previewQuality
	params.Lossless = false
	params.StripMetadata = true

	buf, meta, err := img.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: export preview: %w", err)
	}

	return &Preview{
		Width:       meta.Width,
		Height:      meta.Height,
		Data:        buf,
		ContentType: "image/webp",
	}, nil
}
