// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package compose rasterizes carousel slides: it merges a background
// (image or solid color) with the slide's text zones into a single
// PNG. Text placement comes from the layout engine; drawing happens on
// a software gg canvas.
package compose

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gg"

	"slidepress/internal/layout"
	"slidepress/internal/models"
)

// defaultBackgroundColor is used when a slide specifies no color.
const defaultBackgroundColor = "#ffffff"

// Composer renders slides. It is safe for concurrent use: each call
// draws on its own canvas and the shared font sources are read-only.
type Composer struct {
	fonts *FontSet
}

// New creates a Composer with the embedded font set.
func New() (*Composer, error) {
	fonts, err := NewFontSet()
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	return &Composer{fonts: fonts}, nil
}

// Compose renders one slide to PNG bytes. background is the raw image
// to cover-crop under the text, or nil for a solid fill from the
// slide's background color. zones come from the bound template; when
// empty the default zone pair is synthesized. Zones whose resolved
// text is empty are skipped; later zones paint over earlier ones.
func (c *Composer) Compose(background []byte, zones []models.TextZone, slide *models.CarouselSlide, width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var dc *gg.Context
	if len(background) > 0 {
		img, err := decodeBackground(background, width, height)
		if err != nil {
			return nil, err
		}
		dc = gg.NewContextForImage(img)
	} else {
		color := slide.BackgroundColor
		if color == "" {
			color = defaultBackgroundColor
		}
		dc = gg.NewContext(width, height)
		dc.ClearWithColor(gg.Hex(color))
	}
	defer dc.Close()

	for _, zone := range EffectiveZones(zones, width, height) {
		text := strings.TrimSpace(slide.TextFor(zone.Kind))
		if text == "" {
			continue
		}
		c.drawZone(dc, zone, text)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawZone lays out one zone's text and paints it line by line. Line
// breaks and baselines come from the layout engine's estimate; the
// measured glyph widths only shift each line to honor the alignment
// anchor.
func (c *Composer) drawZone(dc *gg.Context, zone models.TextZone, text string) {
	res := layout.Layout(text, zone)
	if len(res.Lines) == 0 {
		return
	}
	if res.OverflowsWidth || res.OverflowsHeight {
		slog.Debug("zone text overflows",
			"zone", zone.ID,
			"kind", zone.Kind,
			"width_overflow", res.OverflowsWidth,
			"height_overflow", res.OverflowsHeight,
		)
	}

	dc.SetFont(c.fonts.Face(zone.Font.Weight, zone.Font.SizePx))
	dc.SetHexColor(zone.Font.ColorHex)

	ax := anchorFraction(zone.EffectiveAlign())
	for _, line := range res.Lines {
		dc.DrawStringAnchored(line.Text, line.X, line.Baseline, ax, 0)
	}
}

// anchorFraction converts an alignment to the horizontal anchor
// fraction used by DrawStringAnchored.
func anchorFraction(align models.Alignment) float64 {
	switch align {
	case models.AlignLeft:
		return 0
	case models.AlignRight:
		return 1
	default:
		return 0.5
	}
}
