// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// RenderState tags the lifecycle of a slide's cached raster.
type RenderState int

const (
	// RenderAbsent means the slide has never been rendered.
	RenderAbsent RenderState = iota
	// RenderStale means a render exists but its inputs changed since.
	RenderStale
	// RenderFresh means the cached bytes reflect the current inputs.
	RenderFresh
)

// RenderedImage is the memoized composite for one slide. Staleness is
// an explicit state transition, not a convention: every mutation of the
// fields that feed rendering marks the image stale, and the export
// pipeline only accepts fresh images.
type RenderedImage struct {
	state RenderState
	data  []byte
}

// FreshImage wraps freshly composited PNG bytes.
func FreshImage(data []byte) RenderedImage {
	return RenderedImage{state: RenderFresh, data: data}
}

// State returns the current render state. The zero value is RenderAbsent.
func (r RenderedImage) State() RenderState { return r.state }

// Fresh reports whether the cached bytes are usable for export.
func (r RenderedImage) Fresh() bool { return r.state == RenderFresh }

// Bytes returns the cached PNG bytes and whether they are fresh.
// Stale bytes are not returned; callers must re-render.
func (r RenderedImage) Bytes() ([]byte, bool) {
	if r.state != RenderFresh {
		return nil, false
	}
	return r.data, true
}

// Invalidate marks the image stale. An absent image stays absent:
// there is nothing to distrust.
func (r *RenderedImage) Invalidate() {
	if r.state == RenderFresh {
		r.state = RenderStale
		r.data = nil
	}
}

// CarouselSlide is one slide of content belonging to a specific
// carousel. The headline/body/cta triple arrives finalized from the
// content-generation flow; this layer treats them as opaque strings.
type CarouselSlide struct {
	ID              uuid.UUID  `json:"id"`
	CarouselID      uuid.UUID  `json:"carousel_id"`
	Position        int        `json:"position"`
	Headline        string     `json:"headline"`
	Body            string     `json:"body"`
	CTA             string     `json:"cta"`
	BackgroundRef   *uuid.UUID `json:"background_ref,omitempty"`
	BackgroundColor string     `json:"background_color"`
	VisualPrompt    string     `json:"visual_prompt"`

	// Rendered is derived state, never persisted to Postgres; the
	// Valkey render cache hydrates it on load.
	Rendered RenderedImage `json:"-"`
}

// TextFor resolves the content field a zone kind renders. Empty text
// means the zone is skipped entirely.
func (s *CarouselSlide) TextFor(kind ZoneKind) string {
	switch kind {
	case ZoneKindHeadline:
		return s.Headline
	case ZoneKindBody:
		return s.Body
	case ZoneKindCTA:
		return s.CTA
	}
	return ""
}

// CarouselOutput is the per-project carousel: ordered content slides,
// optionally bound to a template. Slide i pairs with the template
// slide at position i (positional, not by id).
type CarouselOutput struct {
	ID         uuid.UUID       `json:"id"`
	ProjectID  uuid.UUID       `json:"project_id"`
	TemplateID *uuid.UUID      `json:"template_id,omitempty"`
	Slides     []CarouselSlide `json:"slides"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SlideAt returns the slide at the given index, or nil if out of range.
func (c *CarouselOutput) SlideAt(index int) *CarouselSlide {
	if c == nil || index < 0 || index >= len(c.Slides) {
		return nil
	}
	return &c.Slides[index]
}

// MissingRenders returns the indices of slides without a fresh
// rendered image, in position order.
func (c *CarouselOutput) MissingRenders() []int {
	var missing []int
	for i := range c.Slides {
		if !c.Slides[i].Rendered.Fresh() {
			missing = append(missing, i)
		}
	}
	return missing
}

// Validate checks carousel-level invariants: an id, at least one
// slide, and contiguous positions from zero.
func (c *CarouselOutput) Validate() error {
	if c.ID == uuid.Nil {
		return &ValidationError{Field: "carousel.id", Reason: "must be set"}
	}
	if len(c.Slides) == 0 {
		return &ValidationError{Field: "carousel.slides", Reason: "must contain at least one slide"}
	}
	for i := range c.Slides {
		if c.Slides[i].Position != i {
			return &ValidationError{Field: "carousel.slides", Reason: "positions are not contiguous from 0"}
		}
	}
	return nil
}
