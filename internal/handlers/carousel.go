// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"slidepress/internal/carousel"
	"slidepress/internal/models"
)

// carouselSlideView augments a slide with its render state, which the
// editor uses to show which slides need re-rendering.
type carouselSlideView struct {
	models.CarouselSlide
	RenderState string `json:"render_state"`
}

// carouselView is the API shape of a carousel aggregate.
type carouselView struct {
	models.CarouselOutput
	Slides []carouselSlideView `json:"slides"`
}

// renderStateLabel maps a render state to its wire name.
func renderStateLabel(s models.RenderState) string {
	switch s {
	case models.RenderFresh:
		return "fresh"
	case models.RenderStale:
		return "stale"
	}
	return "absent"
}

// carouselToView builds the API shape, labeling each slide's render state.
func carouselToView(c *models.CarouselOutput) *carouselView {
	v := &carouselView{CarouselOutput: *c}
	v.CarouselOutput.Slides = nil
	for _, sl := range c.Slides {
		v.Slides = append(v.Slides, carouselSlideView{
			CarouselSlide: sl,
			RenderState:   renderStateLabel(sl.Rendered.State()),
		})
	}
	return v
}

// loadCarousel fetches a project's carousel and hydrates cached
// renders. Writes the HTTP error response itself and returns nil when
// the caller should stop.
func (a *API) loadCarousel(w http.ResponseWriter, r *http.Request) *models.CarouselOutput {
	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return nil
	}
	c, err := a.carouselStore.FindByProject(projectID)
	if err != nil {
		slog.Error("find carousel failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return nil
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Carousel not found")
		return nil
	}
	a.hydrateRenders(r, c)
	return c
}

// hydrateRenders fills slide render state from the Valkey cache. A
// cache hit means the bytes were produced after the slide's last edit:
// every mutation path deletes the slide's cache entry.
func (a *API) hydrateRenders(r *http.Request, c *models.CarouselOutput) {
	if a.renderCache == nil {
		return
	}
	for i := range c.Slides {
		if data, ok := a.renderCache.Get(r.Context(), c.ID, c.Slides[i].ID); ok {
			c.Slides[i].Rendered = models.FreshImage(data)
		}
	}
}

// CarouselCreate creates the project's carousel, optionally bound to a
// template. A project has at most one carousel.
func (a *API) CarouselCreate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}

	var req struct {
		TemplateID *uuid.UUID `json:"template_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.TemplateID != nil {
		t, err := a.templateStore.FindByID(*req.TemplateID)
		if err != nil {
			slog.Error("find template failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if t == nil {
			writeError(w, http.StatusBadRequest, "Unknown template")
			return
		}
	}

	existing, err := a.carouselStore.FindByProject(projectID)
	if err != nil {
		slog.Error("find carousel failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Project already has a carousel")
		return
	}

	c := carousel.NewCarousel(projectID, req.TemplateID)
	if err := a.carouselStore.Create(c); err != nil {
		slog.Error("create carousel failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, carouselToView(c))
}

// CarouselGet returns the project's carousel with per-slide render state.
func (a *API) CarouselGet(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, carouselToView(c))
}

// saveCarousel writes the mutated aggregate back and responds with the
// refreshed view.
func (a *API) saveCarousel(w http.ResponseWriter, c *models.CarouselOutput) {
	if err := a.carouselStore.ReplaceSlides(c); err != nil {
		slog.Error("save carousel failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carouselToView(c))
}

// SlideAdd appends a new slide with default text.
func (a *API) SlideAdd(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}
	carousel.AddSlide(c)
	a.saveCarousel(w, c)
}

// SlideDelete removes one slide by index. The last slide cannot be
// deleted.
func (a *API) SlideDelete(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	var removedID uuid.UUID
	if s := c.SlideAt(req.Index); s != nil {
		removedID = s.ID
	}
	if err := carousel.DeleteSlide(c, req.Index); err != nil {
		writeDomainError(w, err)
		return
	}
	if a.renderCache != nil {
		a.renderCache.Invalidate(r.Context(), c.ID, removedID)
	}
	a.saveCarousel(w, c)
}

// SlideReorder moves a slide between positions. Renders are keyed by
// slide id, so moving slides never invalidates their images.
func (a *API) SlideReorder(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}

	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := carousel.ReorderSlide(c, req.From, req.To); err != nil {
		writeDomainError(w, err)
		return
	}
	a.saveCarousel(w, c)
}

// SlideEdit updates one field on one slide and invalidates that
// slide's cached render. Sibling slides keep theirs.
func (a *API) SlideEdit(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}

	var req struct {
		Index int    `json:"index"`
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateSlideField(req.Field, req.Value); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := carousel.EditSlideField(c, req.Index, carousel.Field(req.Field), req.Value); err != nil {
		writeDomainError(w, err)
		return
	}
	if a.renderCache != nil {
		a.renderCache.Invalidate(r.Context(), c.ID, c.Slides[req.Index].ID)
	}
	a.saveCarousel(w, c)
}

// SlideBackground points a slide at an uploaded asset, or clears the
// override with a null asset id.
func (a *API) SlideBackground(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}

	var req struct {
		Index   int        `json:"index"`
		AssetID *uuid.UUID `json:"asset_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.AssetID != nil {
		asset, err := a.assetStore.FindByID(*req.AssetID)
		if err != nil {
			slog.Error("find asset failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if asset == nil {
			writeError(w, http.StatusBadRequest, "Unknown asset")
			return
		}
	}

	if err := carousel.SetSlideBackground(c, req.Index, req.AssetID); err != nil {
		writeDomainError(w, err)
		return
	}
	if a.renderCache != nil {
		a.renderCache.Invalidate(r.Context(), c.ID, c.Slides[req.Index].ID)
	}
	a.saveCarousel(w, c)
}

// CarouselRender renders every slide that lacks a fresh image and
// stores the results in the render cache. Fresh slides are skipped;
// rendering one slide never touches its siblings' caches.
func (a *API) CarouselRender(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}

	var tpl *models.CarouselTemplate
	if c.TemplateID != nil {
		var err error
		tpl, err = a.templateStore.FindByID(*c.TemplateID)
		if err != nil {
			slog.Error("find template failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
	}

	missing := c.MissingRenders()
	errs := a.renderer.RenderMissing(r.Context(), c, tpl)

	var failed []map[string]any
	for _, e := range errs {
		failed = append(failed, map[string]any{"index": e.SlideIndex, "error": e.Error()})
	}
	if a.renderCache != nil {
		for _, i := range missing {
			if data, fresh := c.Slides[i].Rendered.Bytes(); fresh {
				a.renderCache.Set(r.Context(), c.ID, c.Slides[i].ID, data)
			}
		}
	}

	status := http.StatusOK
	if len(failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, map[string]any{
		"carousel": carouselToView(c),
		"failed":   failed,
	})
}

// SlidePreview streams one slide's rendered PNG for the editor.
func (a *API) SlidePreview(w http.ResponseWriter, r *http.Request) {
	c := a.loadCarousel(w, r)
	if c == nil {
		return
	}
	slideID, ok := uuidParam(w, r, "slideID")
	if !ok {
		return
	}

	for i := range c.Slides {
		if c.Slides[i].ID != slideID {
			continue
		}
		data, fresh := c.Slides[i].Rendered.Bytes()
		if !fresh {
			writeError(w, http.StatusNotFound, "Slide has no fresh render")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}
	writeError(w, http.StatusNotFound, "Slide not found")
}
