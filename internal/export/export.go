// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export packages a fully rendered carousel into a
// downloadable bundle: a multi-page PDF (one page per slide) or a ZIP
// archive (one PNG per slide). Exporters buffer entirely in memory; a
// failed export produces no partial output.
package export

import (
	"fmt"

	"slidepress/internal/models"
	"slidepress/internal/slug"
)

// Format selects the export serialization.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatZIP Format = "zip"
)

// ParseFormat validates a client-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatZIP:
		return FormatZIP, nil
	}
	return "", &models.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", s)}
}

// Result is the finished bundle: bytes, a suggested download
// filename derived from the project name, and the matching MIME type.
type Result struct {
	Filename string
	Bytes    []byte
	MIMEType string
}

// Export serializes the carousel. Every slide must carry a fresh
// rendered image; otherwise a NotRenderedError lists the missing
// slide indices and nothing is produced. Rendering is never triggered
// implicitly — it is a distinct, explicit step.
func Export(c *models.CarouselOutput, projectName string, format Format) (*Result, error) {
	if missing := c.MissingRenders(); len(missing) > 0 {
		return nil, &models.NotRenderedError{Missing: missing}
	}

	// Slides are kept in position order; collect pages in that order.
	pages := make([][]byte, len(c.Slides))
	for i := range c.Slides {
		data, _ := c.Slides[i].Rendered.Bytes()
		pages[i] = data
	}

	switch format {
	case FormatPDF:
		data, err := buildPDF(pages)
		if err != nil {
			return nil, err
		}
		return &Result{
			Filename: slug.Filename(projectName, "-carousel.pdf"),
			Bytes:    data,
			MIMEType: "application/pdf",
		}, nil
	case FormatZIP:
		data, err := buildArchive(pages)
		if err != nil {
			return nil, err
		}
		return &Result{
			Filename: slug.Filename(projectName, "-carousel.zip"),
			Bytes:    data,
			MIMEType: "application/zip",
		}, nil
	}
	return nil, &models.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", format)}
}

// entryName returns the archive entry name for a slide: 1-based index,
// zero-padded to two digits.
func entryName(index int) string {
	return fmt.Sprintf("slide-%02d.png", index+1)
}
