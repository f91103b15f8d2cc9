// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package carousel holds the pure operations over carousel and
// template aggregates: slide mutations that preserve the contiguous
// position invariant, template zone edits, and the per-slide render
// orchestration. Mutations change the aggregate in memory only;
// persistence is the caller's transaction.
package carousel

import (
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// defaultHeadline is the placeholder text a freshly added slide carries.
const defaultHeadline = "New slide"

// Field names one editable slide field.
type Field string

const (
	FieldHeadline        Field = "headline"
	FieldBody            Field = "body"
	FieldCTA             Field = "cta"
	FieldBackgroundColor Field = "background_color"
	FieldVisualPrompt    Field = "visual_prompt"
)

// Valid reports whether the field is editable.
func (f Field) Valid() bool {
	switch f {
	case FieldHeadline, FieldBody, FieldCTA, FieldBackgroundColor, FieldVisualPrompt:
		return true
	}
	return false
}

// AddSlide appends a new slide with default text at the next position
// and returns it.
func AddSlide(c *models.CarouselOutput) *models.CarouselSlide {
	slide := models.CarouselSlide{
		ID:         uuid.New(),
		CarouselID: c.ID,
		Position:   len(c.Slides),
		Headline:   defaultHeadline,
	}
	c.Slides = append(c.Slides, slide)
	return &c.Slides[len(c.Slides)-1]
}

// DeleteSlide removes the slide at index and renumbers the remainder.
// A carousel always keeps at least one slide; deleting the last one is
// rejected before any state changes.
func DeleteSlide(c *models.CarouselOutput, index int) error {
	if index < 0 || index >= len(c.Slides) {
		return &models.InvariantViolationError{Op: "delete slide", Reason: fmt.Sprintf("index %d out of range", index)}
	}
	if len(c.Slides) == 1 {
		return &models.InvariantViolationError{Op: "delete slide", Reason: "carousel must keep at least one slide"}
	}
	c.Slides = append(c.Slides[:index], c.Slides[index+1:]...)
	renumber(c)
	return nil
}

// ReorderSlide moves one slide from one index to another, renumbering
// all affected slides so positions stay a contiguous 0..n-1 set.
func ReorderSlide(c *models.CarouselOutput, from, to int) error {
	n := len(c.Slides)
	if from < 0 || from >= n {
		return &models.InvariantViolationError{Op: "reorder slide", Reason: fmt.Sprintf("from index %d out of range", from)}
	}
	if to < 0 || to >= n {
		return &models.InvariantViolationError{Op: "reorder slide", Reason: fmt.Sprintf("to index %d out of range", to)}
	}
	if from == to {
		return nil
	}
	slide := c.Slides[from]
	c.Slides = append(c.Slides[:from], c.Slides[from+1:]...)
	c.Slides = append(c.Slides[:to], append([]models.CarouselSlide{slide}, c.Slides[to:]...)...)
	renumber(c)
	return nil
}

// EditSlideField updates exactly one text/color field on one slide and
// invalidates that slide's cached render. Sibling slides and their
// caches are untouched.
func EditSlideField(c *models.CarouselOutput, index int, field Field, value string) error {
	if !field.Valid() {
		return &models.ValidationError{Field: "field", Reason: fmt.Sprintf("unknown field %q", field)}
	}
	slide := c.SlideAt(index)
	if slide == nil {
		return &models.InvariantViolationError{Op: "edit slide", Reason: fmt.Sprintf("index %d out of range", index)}
	}

	switch field {
	case FieldHeadline:
		slide.Headline = value
	case FieldBody:
		slide.Body = value
	case FieldCTA:
		slide.CTA = value
	case FieldBackgroundColor:
		slide.BackgroundColor = value
	case FieldVisualPrompt:
		slide.VisualPrompt = value
	}
	slide.Rendered.Invalidate()
	return nil
}

// SetSlideBackground points one slide at an uploaded asset (or clears
// the reference with nil) and invalidates its cached render.
func SetSlideBackground(c *models.CarouselOutput, index int, assetID *uuid.UUID) error {
	slide := c.SlideAt(index)
	if slide == nil {
		return &models.InvariantViolationError{Op: "set slide background", Reason: fmt.Sprintf("index %d out of range", index)}
	}
	slide.BackgroundRef = assetID
	slide.Rendered.Invalidate()
	return nil
}

// UpdateTemplateTextZones replaces the zone list of one template
// slide. Every zone is validated before any state changes. Carousels
// already rendered against the old zones keep their caches: template
// edits never retroactively invalidate bound carousels.
func UpdateTemplateTextZones(t *models.CarouselTemplate, slideID uuid.UUID, zones []models.TextZone) error {
	slide := t.SlideByID(slideID)
	if slide == nil {
		return &models.ValidationError{Field: "slide_id", Reason: fmt.Sprintf("template has no slide %s", slideID)}
	}
	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			return err
		}
	}
	slide.TextZones = zones
	return nil
}

// renumber reassigns positions to match slice order.
func renumber(c *models.CarouselOutput) {
	for i := range c.Slides {
		c.Slides[i].Position = i
	}
}
