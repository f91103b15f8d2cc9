// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"slidepress/internal/models"
)

// FontSet holds the parsed font sources shared by all composites.
// Sources are heavyweight; faces derived from them are cheap and
// created per zone at the zone's font size.
type FontSet struct {
	regular *text.FontSource
	bold    *text.FontSource
}

// NewFontSet parses the embedded Go fonts. Zone font families are
// advisory: the renderer guarantees a legible sans-serif at normal and
// bold weights rather than loading arbitrary user fonts.
func NewFontSet() (*FontSet, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &FontSet{regular: regular, bold: bold}, nil
}

// Face returns a font face for the given weight and pixel size.
func (f *FontSet) Face(weight models.FontWeight, sizePx float64) text.Face {
	if weight == models.WeightBold {
		return f.bold.Face(sizePx)
	}
	return f.regular.Face(sizePx)
}
