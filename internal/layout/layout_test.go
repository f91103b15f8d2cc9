package layout

import (
	"math"
	"reflect"
	"testing"

	"slidepress/internal/models"
)

func zone(w, h, size float64) models.TextZone {
	return models.TextZone{
		ID:   "z",
		Kind: models.ZoneKindHeadline,
		Rect: models.Rect{X: 0, Y: 0, Width: w, Height: h},
		Font: models.FontSpec{SizePx: size},
	}
}

// TestLayoutEmptyText produces zero lines for empty and blank input.
func TestLayoutEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		res := Layout(text, zone(400, 200, 20))
		if len(res.Lines) != 0 {
			t.Errorf("Layout(%q) produced %d lines, want 0", text, len(res.Lines))
		}
	}
}

// TestLayoutSingleLine: a zone wide enough for the whole text yields
// exactly one line equal to the input, with whitespace normalized.
func TestLayoutSingleLine(t *testing.T) {
	res := Layout("Big   Launch", zone(1000, 200, 20))
	if len(res.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(res.Lines))
	}
	if res.Lines[0].Text != "Big Launch" {
		t.Errorf("line text = %q, want %q", res.Lines[0].Text, "Big Launch")
	}
	if res.OverflowsWidth || res.OverflowsHeight {
		t.Error("single short line should not overflow")
	}
}

// TestLayoutGreedyBreaks pins the exact line breaks of the greedy
// algorithm against the character-count width estimate: width 100,
// font 20 gives a 12px character advance.
func TestLayoutGreedyBreaks(t *testing.T) {
	res := Layout("one two three four five six seven eight", zone(100, 400, 20))

	var got []string
	for _, l := range res.Lines {
		got = append(got, l.Text)
	}
	want := []string{"one two", "three", "four", "five six", "seven", "eight"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("line breaks = %v, want %v", got, want)
	}
}

// TestLayoutDeterministic: identical inputs give identical output.
func TestLayoutDeterministic(t *testing.T) {
	z := zone(150, 300, 18)
	text := "the quick brown fox jumps over the lazy dog"
	a := Layout(text, z)
	b := Layout(text, z)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated Layout calls differ")
	}
}

// TestLayoutVerticalCentering: the block's vertical span is centered
// in the zone for several line counts.
func TestLayoutVerticalCentering(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "one line", text: "short"},
		{name: "two lines", text: "aaaa bbbb cccc"},
		{name: "many lines", text: "aaaa bbbb cccc dddd eeee ffff gggg hhhh"},
	}

	const (
		w    = 110.0
		h    = 600.0
		size = 20.0
	)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			z := zone(w, h, size)
			res := Layout(tc.text, z)
			if len(res.Lines) == 0 {
				t.Fatal("no lines")
			}

			total := float64(len(res.Lines)) * res.LineSpacing
			blockTop := res.Lines[0].Baseline - size
			topGap := blockTop - z.Rect.Y
			bottomGap := (z.Rect.Y + z.Rect.Height) - (blockTop + total)
			if math.Abs(topGap-bottomGap) > 1e-9 {
				t.Errorf("block not centered: top gap %v, bottom gap %v", topGap, bottomGap)
			}

			// Baselines advance by exactly one line spacing.
			for i := 1; i < len(res.Lines); i++ {
				step := res.Lines[i].Baseline - res.Lines[i-1].Baseline
				if math.Abs(step-res.LineSpacing) > 1e-9 {
					t.Errorf("baseline step %d = %v, want %v", i, step, res.LineSpacing)
				}
			}
		})
	}
}

// TestLayoutZeroWidthZone degenerates to one word per line.
func TestLayoutZeroWidthZone(t *testing.T) {
	res := Layout("alpha beta gamma", zone(0.001, 100, 20))
	if len(res.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(res.Lines))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if res.Lines[i].Text != want {
			t.Errorf("line %d = %q, want %q", i, res.Lines[i].Text, want)
		}
	}
	if !res.OverflowsWidth {
		t.Error("zero-width zone should report width overflow")
	}
}

// TestLayoutHeightOverflow is reported, not corrected: the block still
// centers on the zone.
func TestLayoutHeightOverflow(t *testing.T) {
	res := Layout("aaaa bbbb cccc dddd eeee", zone(110, 30, 20))
	if !res.OverflowsHeight {
		t.Error("expected height overflow")
	}
	if len(res.Lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(res.Lines))
	}
	// First baseline lands above the zone when the block is taller
	// than the zone; that spill is deliberate.
	total := float64(len(res.Lines)) * res.LineSpacing
	wantFirst := 0 + (30-total)/2 + 20
	if math.Abs(res.Lines[0].Baseline-wantFirst) > 1e-9 {
		t.Errorf("first baseline = %v, want %v", res.Lines[0].Baseline, wantFirst)
	}
}

// TestAnchorX maps alignment to the zone's left edge, center, or
// right edge. Center is the default for unset alignment.
func TestAnchorX(t *testing.T) {
	z := zone(200, 100, 20)
	z.Rect.X = 50

	tests := []struct {
		align models.Alignment
		want  float64
	}{
		{models.AlignLeft, 50},
		{models.AlignCenter, 150},
		{models.AlignRight, 250},
		{models.Alignment(""), 150},
	}
	for _, tc := range tests {
		z.Align = tc.align
		if got := AnchorX(z); got != tc.want {
			t.Errorf("AnchorX(align=%q) = %v, want %v", tc.align, got, tc.want)
		}
	}
}

// TestEstimateWidth is rune-count based, not byte-count based.
func TestEstimateWidth(t *testing.T) {
	if got := EstimateWidth("abcd", 10); got != 24 {
		t.Errorf("EstimateWidth(abcd, 10) = %v, want 24", got)
	}
	// Four runes, twelve bytes.
	if got := EstimateWidth("日本語版", 10); got != 24 {
		t.Errorf("EstimateWidth over multi-byte runes = %v, want 24", got)
	}
}
