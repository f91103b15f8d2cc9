package store

import (
	"testing"

	"github.com/google/uuid"

	"slidepress/internal/carousel"
	"slidepress/internal/models"
)

// templateFixture builds a two-slide template aggregate with one zone
// on the first slide, exercising the jsonb round trip.
func templateFixture(projectID uuid.UUID, name string) *models.CarouselTemplate {
	t := carousel.NewTemplate(projectID, name, []carousel.ImportedBackground{
		{S3Key: "templates/bg-0.png"},
		{S3Key: "templates/bg-1.png"},
	})
	t.Slides[0].TextZones = []models.TextZone{
		{
			ID:   "headline-zone",
			Kind: models.ZoneKindHeadline,
			Rect: models.Rect{X: 108, Y: 194, Width: 864, Height: 238},
			Font: models.FontSpec{
				SizePx:   64,
				Weight:   models.WeightBold,
				ColorHex: "#1a1a1a",
			},
			Align: models.AlignCenter,
		},
	}
	return t
}

func TestTemplateStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	store := NewTemplateStore(db)

	p := testProject(t, db, "Template Test Project")

	tpl := templateFixture(p.ID, "Launch Deck")
	if err := store.Create(tpl); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if tpl.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	found, err := store.FindByID(tpl.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected template to be found")
	}
	if found.SlideCount != 2 || len(found.Slides) != 2 {
		t.Fatalf("expected 2 slides, got count=%d len=%d", found.SlideCount, len(found.Slides))
	}
	for i, sl := range found.Slides {
		if sl.Position != i {
			t.Errorf("slide %d: expected position %d, got %d", i, i, sl.Position)
		}
	}

	zones := found.Slides[0].TextZones
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone on first slide, got %d", len(zones))
	}
	if zones[0].Kind != models.ZoneKindHeadline {
		t.Errorf("expected headline zone, got %q", zones[0].Kind)
	}
	if zones[0].Font.SizePx != 64 {
		t.Errorf("expected font size 64, got %v", zones[0].Font.SizePx)
	}
	if len(found.Slides[1].TextZones) != 0 {
		t.Errorf("expected empty zone list on second slide, got %d", len(found.Slides[1].TextZones))
	}
}

func TestTemplateStoreFindMissing(t *testing.T) {
	db := testDB(t)

	found, err := NewTemplateStore(db).FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found != nil {
		t.Error("expected nil for missing template")
	}
}

func TestTemplateStoreUpdateSlideZones(t *testing.T) {
	db := testDB(t)
	store := NewTemplateStore(db)

	p := testProject(t, db, "Zone Update Project")

	tpl := templateFixture(p.ID, "Zone Update Deck")
	if err := store.Create(tpl); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := []models.TextZone{
		{
			ID:   "body-zone",
			Kind: models.ZoneKindBody,
			Rect: models.Rect{X: 108, Y: 486, Width: 864, Height: 324},
			Font: models.FontSpec{SizePx: 36, ColorHex: "#333333"},
		},
	}
	if err := store.UpdateSlideZones(tpl.ID, tpl.Slides[1].ID, replacement); err != nil {
		t.Fatalf("UpdateSlideZones failed: %v", err)
	}

	found, err := store.FindByID(tpl.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(found.Slides[1].TextZones) != 1 || found.Slides[1].TextZones[0].Kind != models.ZoneKindBody {
		t.Errorf("expected replaced body zone, got %+v", found.Slides[1].TextZones)
	}

	// Clearing to nil persists an empty list, not NULL.
	if err := store.UpdateSlideZones(tpl.ID, tpl.Slides[1].ID, nil); err != nil {
		t.Fatalf("UpdateSlideZones with nil failed: %v", err)
	}
	found, err = store.FindByID(tpl.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(found.Slides[1].TextZones) != 0 {
		t.Errorf("expected cleared zones, got %d", len(found.Slides[1].TextZones))
	}

	if err := store.UpdateSlideZones(tpl.ID, uuid.New(), replacement); err == nil {
		t.Error("expected error for unknown slide id")
	}
}

func TestTemplateStoreDelete(t *testing.T) {
	db := testDB(t)
	store := NewTemplateStore(db)

	p := testProject(t, db, "Template Delete Project")

	tpl := templateFixture(p.ID, "Short Lived Deck")
	if err := store.Create(tpl); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A carousel bound to the template survives deletion with the
	// binding cleared.
	c := carousel.NewCarousel(p.ID, &tpl.ID)
	if err := NewCarouselStore(db).Create(c); err != nil {
		t.Fatalf("carousel Create failed: %v", err)
	}

	if err := store.Delete(tpl.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	found, err := store.FindByID(tpl.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found != nil {
		t.Error("expected template to be gone")
	}

	reloaded, err := NewCarouselStore(db).FindByID(c.ID)
	if err != nil {
		t.Fatalf("carousel FindByID failed: %v", err)
	}
	if reloaded == nil {
		t.Fatal("expected carousel to survive template deletion")
	}
	if reloaded.TemplateID != nil {
		t.Error("expected carousel template binding to be cleared")
	}
}
