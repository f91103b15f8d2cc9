// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout fits arbitrary text into fixed rectangular zones. It
// is pure and deterministic: greedy word wrapping against an estimated
// character width, vertical centering of the resulting block, and a
// horizontal anchor derived from the zone's alignment. Nothing here
// clips or shrinks text; overflow is reported to the caller as an
// observable condition and otherwise left alone.
package layout

import (
	"strings"
	"unicode/utf8"

	"slidepress/internal/models"
)

// WidthFactor is the estimated advance of one character as a fraction
// of the font size. It intentionally trades accuracy for determinism:
// line breaks depend only on character counts, never on font files.
const WidthFactor = 0.6

// Line is one positioned line fragment. X is the horizontal anchor
// point (shared by all lines of a block); Baseline is the y coordinate
// the text sits on.
type Line struct {
	Text     string
	X        float64
	Baseline float64
}

// Result is the positioned output for one zone of text.
type Result struct {
	Lines []Line

	// LineSpacing is the baseline-to-baseline distance in pixels.
	LineSpacing float64

	// OverflowsWidth is set when at least one line's estimated width
	// exceeds the zone width (a single long word, or a zero-width zone).
	OverflowsWidth bool

	// OverflowsHeight is set when the block's total height exceeds the
	// zone height. The block still centers on the zone and spills past
	// its bounds.
	OverflowsHeight bool
}

// EstimateWidth returns the heuristic pixel width of text at the given
// font size: one WidthFactor*sizePx advance per character.
func EstimateWidth(text string, sizePx float64) float64 {
	return float64(utf8.RuneCountInString(text)) * sizePx * WidthFactor
}

// AnchorX returns the horizontal anchor point for a zone: the left
// edge, center, or right edge depending on alignment.
func AnchorX(zone models.TextZone) float64 {
	switch zone.EffectiveAlign() {
	case models.AlignLeft:
		return zone.Rect.X
	case models.AlignRight:
		return zone.Rect.X + zone.Rect.Width
	default:
		return zone.Rect.X + zone.Rect.Width/2
	}
}

// Layout wraps text into the zone and positions every line. Internal
// runs of whitespace collapse to single spaces. Empty or blank text
// yields zero lines.
func Layout(text string, zone models.TextZone) Result {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Result{}
	}

	sizePx := zone.Font.SizePx
	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if EstimateWidth(candidate, sizePx) > zone.Rect.Width && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}

	spacing := sizePx * zone.EffectiveLineHeight()
	total := float64(len(lines)) * spacing

	// Center the block vertically; the first baseline sits one font
	// size below the block's top edge.
	startBaseline := zone.Rect.Y + (zone.Rect.Height-total)/2 + sizePx
	x := AnchorX(zone)

	res := Result{
		Lines:           make([]Line, len(lines)),
		LineSpacing:     spacing,
		OverflowsHeight: total > zone.Rect.Height,
	}
	for i, text := range lines {
		res.Lines[i] = Line{
			Text:     text,
			X:        x,
			Baseline: startBaseline + float64(i)*spacing,
		}
		if EstimateWidth(text, sizePx) > zone.Rect.Width {
			res.OverflowsWidth = true
		}
	}
	return res
}
