// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSlide is one position within a reusable template: an optional
// branded background plus the text zones laid over it. Background bytes
// live in object storage; the slide only carries the key.
type TemplateSlide struct {
	ID            uuid.UUID  `json:"id"`
	TemplateID    uuid.UUID  `json:"template_id"`
	Position      int        `json:"position"`
	BackgroundKey *string    `json:"background_key,omitempty"`
	PreviewKey    *string    `json:"preview_key,omitempty"`
	TextZones     []TextZone `json:"text_zones"`
}

// HasBackground reports whether the slide has a stored background
// image. Without one, a bound carousel slide falls back to its solid
// background color.
func (s *TemplateSlide) HasBackground() bool {
	return s.BackgroundKey != nil && *s.BackgroundKey != ""
}

// CarouselTemplate is the reusable shell: an ordered list of slide
// backgrounds and zone placements, independent of any one carousel's
// content. One template may serve many carousels.
type CarouselTemplate struct {
	ID         uuid.UUID       `json:"id"`
	ProjectID  uuid.UUID       `json:"project_id"`
	Name       string          `json:"name"`
	SlideCount int             `json:"slide_count"`
	Slides     []TemplateSlide `json:"slides"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SlideAt returns the template slide at the given position, or nil if
// the position is beyond the template. Carousel slides pair with
// template slides positionally, so extra carousel slides get nil here
// and render with synthesized default zones.
func (t *CarouselTemplate) SlideAt(position int) *TemplateSlide {
	if t == nil || position < 0 || position >= len(t.Slides) {
		return nil
	}
	return &t.Slides[position]
}

// SlideByID returns the template slide with the given id, or nil.
func (t *CarouselTemplate) SlideByID(id uuid.UUID) *TemplateSlide {
	if t == nil {
		return nil
	}
	for i := range t.Slides {
		if t.Slides[i].ID == id {
			return &t.Slides[i]
		}
	}
	return nil
}

// Validate checks template-level invariants: the declared slide count
// must match the actual slide list, and positions must be contiguous
// from zero.
func (t *CarouselTemplate) Validate() error {
	if t.ID == uuid.Nil {
		return &ValidationError{Field: "template.id", Reason: "must be set"}
	}
	if t.SlideCount != len(t.Slides) {
		return &ValidationError{Field: "template.slide_count", Reason: "does not match slide list length"}
	}
	for i := range t.Slides {
		if t.Slides[i].Position != i {
			return &ValidationError{Field: "template.slides", Reason: "positions are not contiguous from 0"}
		}
		for j := range t.Slides[i].TextZones {
			if err := t.Slides[i].TextZones[j].Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
