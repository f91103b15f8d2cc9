// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import (
	"github.com/google/uuid"

	"slidepress/internal/models"
)

// ImportedBackground is one uploaded template background after the
// asset pipeline stored it: the original object key plus an optional
// preview variant key.
type ImportedBackground struct {
	S3Key      string
	PreviewKey *string
}

// NewTemplate builds a template from imported backgrounds: one
// template slide per file, in upload order, each starting with an
// empty zone list. Zones are authored afterwards via
// UpdateTemplateTextZones.
func NewTemplate(projectID uuid.UUID, name string, backgrounds []ImportedBackground) *models.CarouselTemplate {
	t := &models.CarouselTemplate{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Name:       name,
		SlideCount: len(backgrounds),
		Slides:     make([]models.TemplateSlide, len(backgrounds)),
	}
	for i, bg := range backgrounds {
		key := bg.S3Key
		t.Slides[i] = models.TemplateSlide{
			ID:            uuid.New(),
			TemplateID:    t.ID,
			Position:      i,
			BackgroundKey: &key,
			PreviewKey:    bg.PreviewKey,
		}
	}
	return t
}

// NewCarousel creates a carousel with a single default slide,
// optionally bound to a template. Positional pairing with the template
// happens at render time, not here.
func NewCarousel(projectID uuid.UUID, templateID *uuid.UUID) *models.CarouselOutput {
	c := &models.CarouselOutput{
		ID:         uuid.New(),
		ProjectID:  projectID,
		TemplateID: templateID,
	}
	AddSlide(c)
	return c
}
