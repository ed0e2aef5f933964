package render

import (
	"bytes"
	"testing"

	"github.com/dgallion1/deckgen/internal/deck"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderPNG_Bar(t *testing.T) {
	r, err := NewChartRenderer("")
	if err != nil {
		t.Fatalf("new chart renderer: %v", err)
	}
	spec := &deck.ChartSpec{
		Type:       deck.ChartTypeBar,
		Title:      "Revenue",
		Categories: deck.StringList{"Q1", "Q2", "Q3"},
		Values:     deck.FloatList{10, 25, 17},
	}
	var buf bytes.Buffer
	if err := r.RenderPNG(spec, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderPNG_Line(t *testing.T) {
	r, _ := NewChartRenderer("")
	spec := &deck.ChartSpec{
		Type:       deck.ChartTypeLine,
		Title:      "Adoption",
		Categories: deck.StringList{"2023", "2024"},
		Values:     deck.FloatList{3.5, 7.1},
	}
	var buf bytes.Buffer
	if err := r.RenderPNG(spec, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderPNG_MisalignedSpec(t *testing.T) {
	r, _ := NewChartRenderer("")
	spec := &deck.ChartSpec{
		Title:      "broken",
		Categories: deck.StringList{"a", "b", "c"},
		Values:     deck.FloatList{1},
	}
	if err := r.RenderPNG(spec, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for misaligned categories/values")
	}
}

func TestRenderPNG_EmptyValues(t *testing.T) {
	r, _ := NewChartRenderer("")
	if err := r.RenderPNG(&deck.ChartSpec{Title: "empty"}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for empty values")
	}
}

func TestNewChartRenderer_BadFontPath(t *testing.T) {
	if _, err := NewChartRenderer("/nonexistent/font.ttf"); err == nil {
		t.Error("expected an error for a missing font file")
	}
}
