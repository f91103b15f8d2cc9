package carousel

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"

	"slidepress/internal/compose"
	"slidepress/internal/models"
)

// fakeSource serves background bytes from memory.
type fakeSource struct {
	templates map[string][]byte
	assets    map[uuid.UUID][]byte
}

func (f *fakeSource) TemplateBackground(_ context.Context, key string) ([]byte, error) {
	data, ok := f.templates[key]
	if !ok {
		return nil, fmt.Errorf("no template object %s", key)
	}
	return data, nil
}

func (f *fakeSource) AssetBackground(_ context.Context, id uuid.UUID) ([]byte, error) {
	data, ok := f.assets[id]
	if !ok {
		return nil, fmt.Errorf("no asset %s", id)
	}
	return data, nil
}

func solidPNG(t *testing.T, w, h int, col color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, col)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func testRenderer(t *testing.T, source BackgroundSource) *Renderer {
	t.Helper()
	composer, err := compose.New()
	if err != nil {
		t.Fatalf("compose.New: %v", err)
	}
	r := NewRenderer(composer, source)
	// Small canvas keeps the parallel render tests fast.
	r.width, r.height = 200, 200
	return r
}

// TestRenderAllTemplateless renders every slide fresh with solid
// backgrounds and default zones.
func TestRenderAllTemplateless(t *testing.T) {
	r := testRenderer(t, &fakeSource{})
	c := testCarousel(3)
	c.Slides[0].Headline = "Big Launch"
	c.Slides[0].Body = ""

	errs := r.RenderAll(context.Background(), c, nil)
	if len(errs) != 0 {
		t.Fatalf("RenderAll errors: %v", errs)
	}
	if missing := c.MissingRenders(); len(missing) != 0 {
		t.Fatalf("slides missing renders: %v", missing)
	}
	data, _ := c.Slides[0].Rendered.Bytes()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered image not PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("rendered size = %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}

// TestRenderAllPartialFailure: one corrupt background fails that slide
// only; siblings render and keep their images.
func TestRenderAllPartialFailure(t *testing.T) {
	badAsset := uuid.New()
	source := &fakeSource{assets: map[uuid.UUID][]byte{badAsset: []byte("corrupt")}}
	r := testRenderer(t, source)

	c := testCarousel(3)
	c.Slides[1].BackgroundRef = &badAsset

	errs := r.RenderAll(context.Background(), c, nil)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].SlideIndex != 1 {
		t.Errorf("failing slide index = %d, want 1", errs[0].SlideIndex)
	}
	if !c.Slides[0].Rendered.Fresh() || !c.Slides[2].Rendered.Fresh() {
		t.Error("sibling slides did not keep their renders")
	}
	if c.Slides[1].Rendered.Fresh() {
		t.Error("failed slide claims a fresh render")
	}
}

// TestRenderMissingSkipsFresh: already-fresh slides keep their exact
// bytes; only stale/absent slides are re-rendered.
func TestRenderMissingSkipsFresh(t *testing.T) {
	r := testRenderer(t, &fakeSource{})
	c := testCarousel(3)

	sentinel := []byte("sentinel-not-a-png")
	c.Slides[1].Rendered = models.FreshImage(sentinel)

	errs := r.RenderMissing(context.Background(), c, nil)
	if len(errs) != 0 {
		t.Fatalf("RenderMissing errors: %v", errs)
	}
	if missing := c.MissingRenders(); len(missing) != 0 {
		t.Fatalf("slides missing renders: %v", missing)
	}
	data, _ := c.Slides[1].Rendered.Bytes()
	if !bytes.Equal(data, sentinel) {
		t.Error("fresh slide was re-rendered")
	}
	for _, i := range []int{0, 2} {
		data, _ := c.Slides[i].Rendered.Bytes()
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("slide %d render not PNG: %v", i, err)
		}
	}
}

// TestRenderBackgroundPrecedence: asset override beats template
// background beats solid color.
func TestRenderBackgroundPrecedence(t *testing.T) {
	assetID := uuid.New()
	red := solidPNG(t, 50, 50, color.RGBA{R: 200, A: 255})
	blue := solidPNG(t, 50, 50, color.RGBA{B: 200, A: 255})
	source := &fakeSource{
		templates: map[string][]byte{"templates/bg.png": blue},
		assets:    map[uuid.UUID][]byte{assetID: red},
	}
	r := testRenderer(t, source)

	tpl := NewTemplate(uuid.New(), "Kit", []ImportedBackground{{S3Key: "templates/bg.png"}})
	c := NewCarousel(tpl.ProjectID, &tpl.ID)
	c.Slides[0].Headline = ""

	// Template background applies first.
	data, err := r.RenderSlide(context.Background(), c, tpl, 0)
	if err != nil {
		t.Fatalf("RenderSlide: %v", err)
	}
	if got := dominantChannel(t, data); got != "blue" {
		t.Errorf("template background render is %s, want blue", got)
	}

	// Asset override wins.
	c.Slides[0].BackgroundRef = &assetID
	data, err = r.RenderSlide(context.Background(), c, tpl, 0)
	if err != nil {
		t.Fatalf("RenderSlide with override: %v", err)
	}
	if got := dominantChannel(t, data); got != "red" {
		t.Errorf("asset override render is %s, want red", got)
	}
}

// TestRenderBeyondTemplate: extra carousel slides past the template's
// length render with defaults instead of failing.
func TestRenderBeyondTemplate(t *testing.T) {
	source := &fakeSource{templates: map[string][]byte{
		"templates/bg.png": solidPNG(t, 50, 50, color.RGBA{B: 200, A: 255}),
	}}
	r := testRenderer(t, source)

	tpl := NewTemplate(uuid.New(), "Kit", []ImportedBackground{{S3Key: "templates/bg.png"}})
	c := NewCarousel(tpl.ProjectID, &tpl.ID)
	AddSlide(c)

	errs := r.RenderAll(context.Background(), c, tpl)
	if len(errs) != 0 {
		t.Fatalf("RenderAll errors: %v", errs)
	}
	// Slide 1 has no template pair: white default background.
	data, _ := c.Slides[1].Rendered.Bytes()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rr, gg, bb, _ := img.At(2, 2).RGBA()
	if rr>>8 < 250 || gg>>8 < 250 || bb>>8 < 250 {
		t.Error("extra slide corner is not default white")
	}
}

// dominantChannel decodes a PNG and names the strongest channel of its
// top-left pixel.
func dominantChannel(t *testing.T, data []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(2, 2).RGBA()
	switch {
	case r > g && r > b:
		return "red"
	case b > r && b > g:
		return "blue"
	case g > r && g > b:
		return "green"
	}
	return "none"
}
