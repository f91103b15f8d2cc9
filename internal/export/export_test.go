package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// renderedCarousel builds an n-slide carousel with distinct fake PNG
// payloads per slide.
func renderedCarousel(n int) *models.CarouselOutput {
	c := &models.CarouselOutput{ID: uuid.New()}
	for i := 0; i < n; i++ {
		c.Slides = append(c.Slides, models.CarouselSlide{
			ID:       uuid.New(),
			Position: i,
			Headline: "h",
			Rendered: models.FreshImage(fakePNG(byte(i))),
		})
	}
	return c
}

// fakePNG encodes a real 2x2 PNG and appends a marker byte after IEND
// so each slide's payload is distinct. Readers stop at IEND, so the
// trailing byte never interferes with decoding.
func fakePNG(marker byte) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: marker, G: 128, B: 32, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return append(buf.Bytes(), marker)
}

// TestExportNotRendered lists every missing slide and produces nothing.
func TestExportNotRendered(t *testing.T) {
	c := renderedCarousel(4)
	c.Slides[1].Rendered.Invalidate()
	c.Slides[3].Rendered = models.RenderedImage{}

	res, err := Export(c, "My Project", FormatZIP)
	if err == nil {
		t.Fatal("export of unrendered carousel succeeded")
	}
	if res != nil {
		t.Error("partial result returned alongside error")
	}
	var nr *models.NotRenderedError
	if !errors.As(err, &nr) {
		t.Fatalf("error type = %T, want *NotRenderedError", err)
	}
	if !reflect.DeepEqual(nr.Missing, []int{1, 3}) {
		t.Errorf("missing = %v, want [1 3]", nr.Missing)
	}
}

// TestExportArchive checks entry naming, ordering, and payloads.
func TestExportArchive(t *testing.T) {
	c := renderedCarousel(3)
	res, err := Export(c, "Q3 Product Launch!", FormatZIP)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Filename != "q3-product-launch-carousel.zip" {
		t.Errorf("filename = %q", res.Filename)
	}
	if res.MIMEType != "application/zip" {
		t.Errorf("mime = %q", res.MIMEType)
	}

	zr, err := zip.NewReader(bytes.NewReader(res.Bytes), int64(len(res.Bytes)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	wantNames := []string{"slide-01.png", "slide-02.png", "slide-03.png"}
	if len(zr.File) != len(wantNames) {
		t.Fatalf("archive has %d entries, want %d", len(zr.File), len(wantNames))
	}
	for i, f := range zr.File {
		if f.Name != wantNames[i] {
			t.Errorf("entry %d name = %q, want %q", i, f.Name, wantNames[i])
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %d: %v", i, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %d: %v", i, err)
		}
		want, _ := c.Slides[i].Rendered.Bytes()
		if !bytes.Equal(data, want) {
			t.Errorf("entry %d content does not match slide %d's rendered bytes", i, i)
		}
	}
}

// TestExportPDF produces a valid multi-page document.
func TestExportPDF(t *testing.T) {
	c := renderedCarousel(3)
	res, err := Export(c, "My Project", FormatPDF)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Filename != "my-project-carousel.pdf" {
		t.Errorf("filename = %q", res.Filename)
	}
	if res.MIMEType != "application/pdf" {
		t.Errorf("mime = %q", res.MIMEType)
	}
	if !bytes.HasPrefix(res.Bytes, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
	if !bytes.Contains(res.Bytes, []byte("/Count 3")) {
		t.Error("document does not declare 3 pages")
	}
}

// TestExportDeterministic: identical rendered inputs produce identical
// bytes for both formats.
func TestExportDeterministic(t *testing.T) {
	c := renderedCarousel(2)
	for _, format := range []Format{FormatPDF, FormatZIP} {
		a, err := Export(c, "p", format)
		if err != nil {
			t.Fatalf("export %s: %v", format, err)
		}
		b, err := Export(c, "p", format)
		if err != nil {
			t.Fatalf("re-export %s: %v", format, err)
		}
		if !bytes.Equal(a.Bytes, b.Bytes) {
			t.Errorf("%s export is not deterministic", format)
		}
	}
}

// TestParseFormat accepts the two formats and rejects the rest.
func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("pdf"); err != nil || f != FormatPDF {
		t.Errorf("ParseFormat(pdf) = %v, %v", f, err)
	}
	if f, err := ParseFormat("zip"); err != nil || f != FormatZIP {
		t.Errorf("ParseFormat(zip) = %v, %v", f, err)
	}
	if _, err := ParseFormat("png"); err == nil {
		t.Error("ParseFormat(png) accepted")
	}
}
