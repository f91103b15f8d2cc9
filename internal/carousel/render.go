// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"slidepress/internal/compose"
	"slidepress/internal/models"
)

// BackgroundSource resolves background bytes for rendering: template
// backgrounds by storage key, slide overrides by asset id. Implemented
// by the storage/store pair; tests supply an in-memory fake.
type BackgroundSource interface {
	TemplateBackground(ctx context.Context, key string) ([]byte, error)
	AssetBackground(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// Renderer materializes rendered images for carousel slides. Slides
// render in parallel: each render reads only its own inputs and writes
// only its own slot, so no synchronization is needed beyond the final
// write-back into the aggregate.
type Renderer struct {
	composer *compose.Composer
	source   BackgroundSource
	width    int
	height   int
}

// NewRenderer creates a Renderer producing slides at the default
// 1080x1080 size.
func NewRenderer(composer *compose.Composer, source BackgroundSource) *Renderer {
	return &Renderer{
		composer: composer,
		source:   source,
		width:    compose.DefaultWidth,
		height:   compose.DefaultHeight,
	}
}

// RenderSlide composes one slide against its positional template slide
// and returns the PNG bytes. Background precedence: slide asset
// override, then template background, then solid color.
func (r *Renderer) RenderSlide(ctx context.Context, c *models.CarouselOutput, tpl *models.CarouselTemplate, index int) ([]byte, error) {
	slide := c.SlideAt(index)
	if slide == nil {
		return nil, fmt.Errorf("slide index %d out of range", index)
	}

	tplSlide := tpl.SlideAt(index)

	var background []byte
	var err error
	switch {
	case slide.BackgroundRef != nil:
		background, err = r.source.AssetBackground(ctx, *slide.BackgroundRef)
	case tplSlide != nil && tplSlide.HasBackground():
		background, err = r.source.TemplateBackground(ctx, *tplSlide.BackgroundKey)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve background: %w", err)
	}

	var zones []models.TextZone
	if tplSlide != nil {
		zones = tplSlide.TextZones
	}
	return r.composer.Compose(background, zones, slide, r.width, r.height)
}

// RenderAll renders every slide of the carousel in parallel and writes
// fresh images back into the aggregate. A failing slide yields a
// RenderError carrying its index; sibling slides render regardless and
// keep their new images. The returned slice is empty on full success.
func (r *Renderer) RenderAll(ctx context.Context, c *models.CarouselOutput, tpl *models.CarouselTemplate) []*models.RenderError {
	indexes := make([]int, len(c.Slides))
	for i := range indexes {
		indexes[i] = i
	}
	return r.renderIndexes(ctx, c, tpl, indexes)
}

// RenderMissing renders only the slides without a fresh image, in
// parallel. Fresh slides are never touched: rendering one slide must
// not affect its siblings' caches.
func (r *Renderer) RenderMissing(ctx context.Context, c *models.CarouselOutput, tpl *models.CarouselTemplate) []*models.RenderError {
	return r.renderIndexes(ctx, c, tpl, c.MissingRenders())
}

// renderIndexes runs the given slide renders in parallel, each writing
// only its own result slot, then writes fresh images back into the
// aggregate in index order.
func (r *Renderer) renderIndexes(ctx context.Context, c *models.CarouselOutput, tpl *models.CarouselTemplate, indexes []int) []*models.RenderError {
	type result struct {
		data []byte
		err  error
	}
	results := make([]result, len(indexes))

	var wg sync.WaitGroup
	for n, i := range indexes {
		wg.Add(1)
		go func(n, i int) {
			defer wg.Done()
			data, err := r.RenderSlide(ctx, c, tpl, i)
			results[n] = result{data: data, err: err}
		}(n, i)
	}
	wg.Wait()

	var errs []*models.RenderError
	for n, res := range results {
		i := indexes[n]
		if res.err != nil {
			errs = append(errs, &models.RenderError{SlideIndex: i, Err: res.err})
			slog.Warn("slide render failed", "carousel", c.ID, "slide", i, "error", res.err)
			continue
		}
		c.Slides[i].Rendered = models.FreshImage(res.data)
	}
	return errs
}
