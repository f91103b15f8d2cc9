// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import "slidepress/internal/models"

// Default slide dimensions (square, social-post sized).
const (
	DefaultWidth  = 1080
	DefaultHeight = 1080
)

// DefaultZones synthesizes the fallback zone pair used when a slide
// has no template zones: a bold headline centered in the upper-middle
// area and a body block just below it. Template-less slides render
// usably through exactly this policy.
func DefaultZones(width, height int) []models.TextZone {
	w := float64(width)
	h := float64(height)
	return []models.TextZone{
		{
			ID:   "default-headline",
			Kind: models.ZoneKindHeadline,
			Rect: models.Rect{X: w * 0.10, Y: h * 0.18, Width: w * 0.80, Height: h * 0.22},
			Font: models.FontSpec{
				SizePx:   64,
				Family:   "sans-serif",
				Weight:   models.WeightBold,
				ColorHex: "#1a1a1a",
			},
			Align:      models.AlignCenter,
			LineHeight: models.DefaultLineHeight,
		},
		{
			ID:   "default-body",
			Kind: models.ZoneKindBody,
			Rect: models.Rect{X: w * 0.10, Y: h * 0.45, Width: w * 0.80, Height: h * 0.30},
			Font: models.FontSpec{
				SizePx:   36,
				Family:   "sans-serif",
				Weight:   models.WeightNormal,
				ColorHex: "#333333",
			},
			Align:      models.AlignCenter,
			LineHeight: models.DefaultLineHeight,
		},
	}
}

// EffectiveZones returns the zones to render for a slide: the supplied
// template zones verbatim, or the synthesized default pair when the
// template contributes none.
func EffectiveZones(zones []models.TextZone, width, height int) []models.TextZone {
	if len(zones) == 0 {
		return DefaultZones(width, height)
	}
	return zones
}
