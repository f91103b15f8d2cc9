// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// pageSizePt is the square page size in points. Pages carry the slide
// raster verbatim, so the page matches the 1080px slide one point per
// pixel; no per-page text re-layout happens here.
const pageSizePt = 1080

// buildPDF assembles one fixed-size page per slide, each page exactly
// the slide's rendered PNG scaled to the full page.
func buildPDF(pages [][]byte) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pageSizePt, Ht: pageSizePt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	// Pinned timestamps keep the output deterministic for identical
	// rendered inputs.
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, page := range pages {
		name := entryName(i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(page))
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, pageSizePt, pageSizePt, false, opts, 0, "")
	}
	if pdf.Err() {
		return nil, fmt.Errorf("assemble pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
