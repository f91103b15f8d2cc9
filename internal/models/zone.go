// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// ZoneKind selects which content field of a carousel slide supplies the
// text rendered into a zone.
type ZoneKind string

const (
	ZoneKindHeadline ZoneKind = "headline"
	ZoneKindBody     ZoneKind = "body"
	ZoneKindCTA      ZoneKind = "cta"
)

// Valid reports whether the kind is one of the known zone kinds.
func (k ZoneKind) Valid() bool {
	switch k {
	case ZoneKindHeadline, ZoneKindBody, ZoneKindCTA:
		return true
	}
	return false
}

// Alignment is the horizontal text alignment within a zone.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// FontWeight is the rendered weight of a zone's text.
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// Rect is a rectangle in slide-pixel coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontSpec describes how a zone's text is drawn.
type FontSpec struct {
	SizePx   float64    `json:"size_px"`
	Family   string     `json:"family"`
	Weight   FontWeight `json:"weight"`
	ColorHex string     `json:"color_hex"`
}

// DefaultLineHeight is the line-height multiple applied when a zone
// does not specify one.
const DefaultLineHeight = 1.2

// TextZone places one content field on a slide. Zones are authored when
// a template is imported or edited; their order within a slide is paint
// order (later zones draw over earlier ones).
type TextZone struct {
	ID         string    `json:"id"`
	Kind       ZoneKind  `json:"kind"`
	Rect       Rect      `json:"rect"`
	Font       FontSpec  `json:"font"`
	Align      Alignment `json:"align"`
	LineHeight float64   `json:"line_height"`
}

// EffectiveAlign returns the zone's alignment, defaulting to center.
func (z *TextZone) EffectiveAlign() Alignment {
	switch z.Align {
	case AlignLeft, AlignCenter, AlignRight:
		return z.Align
	}
	return AlignCenter
}

// EffectiveLineHeight returns the line-height multiple, defaulting to
// DefaultLineHeight when unset or nonsensical.
func (z *TextZone) EffectiveLineHeight() float64 {
	if z.LineHeight <= 0 {
		return DefaultLineHeight
	}
	return z.LineHeight
}

// Validate checks zone geometry and enumerations. A zone may extend
// past the slide bounds (overflow is defined behavior), but degenerate
// dimensions and unknown kinds are rejected.
func (z *TextZone) Validate() error {
	if z.ID == "" {
		return &ValidationError{Field: "zone.id", Reason: "must not be empty"}
	}
	if !z.Kind.Valid() {
		return &ValidationError{Field: "zone.kind", Reason: fmt.Sprintf("unknown kind %q", z.Kind)}
	}
	if z.Rect.Width <= 0 {
		return &ValidationError{Field: "zone.rect.width", Reason: "must be > 0"}
	}
	if z.Rect.Height <= 0 {
		return &ValidationError{Field: "zone.rect.height", Reason: "must be > 0"}
	}
	if z.Font.SizePx <= 0 {
		return &ValidationError{Field: "zone.font.size_px", Reason: "must be > 0"}
	}
	return nil
}
