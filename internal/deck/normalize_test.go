package deck

import (
	"reflect"
	"testing"
)

func deckWithTopic(t Topic) *Deck {
	return &Deck{
		Title:  "T",
		Slides: SlideList{{Title: "S", Topics: TopicList{t}}},
	}
}

func TestNormalize_SourcesBackfillFromFacts(t *testing.T) {
	d := deckWithTopic(Topic{Subtitle: "x"})
	Normalize(d, []string{"F1", "F2", "F3"})
	got := d.Slides[0].Topics[0].Sources
	want := StringList{"F1", "F2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected sources %v, got %v", want, got)
	}
}

func TestNormalize_SourcesFallbackWithoutFacts(t *testing.T) {
	d := deckWithTopic(Topic{Subtitle: "x"})
	Normalize(d, nil)
	got := d.Slides[0].Topics[0].Sources
	want := StringList{FallbackSource}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected sources %v, got %v", want, got)
	}
}

func TestNormalize_ExistingSourcesKept(t *testing.T) {
	d := deckWithTopic(Topic{Sources: StringList{"mine"}})
	Normalize(d, []string{"F1"})
	got := d.Slides[0].Topics[0].Sources
	if !reflect.DeepEqual(got, StringList{"mine"}) {
		t.Errorf("existing sources must not be overwritten, got %v", got)
	}
}

func TestNormalize_ChartCategoriesSynthesized(t *testing.T) {
	d := deckWithTopic(Topic{Chart: &ChartSpec{Type: "bar", Values: FloatList{1, 2, 3}}})
	Normalize(d, nil)
	c := d.Slides[0].Topics[0].Chart
	if c == nil {
		t.Fatal("chart should survive normalization")
	}
	want := StringList{"Item 1", "Item 2", "Item 3"}
	if !reflect.DeepEqual(c.Categories, want) {
		t.Errorf("expected categories %v, got %v", want, c.Categories)
	}
}

func TestNormalize_ChartTruncatedToShorter(t *testing.T) {
	d := deckWithTopic(Topic{Chart: &ChartSpec{
		Type:       "bar",
		Categories: StringList{"a", "b", "c", "d"},
		Values:     FloatList{1, 2},
	}})
	Normalize(d, nil)
	c := d.Slides[0].Topics[0].Chart
	if len(c.Categories) != 2 || len(c.Values) != 2 {
		t.Fatalf("expected both sides truncated to 2, got %d/%d", len(c.Categories), len(c.Values))
	}
	if c.Categories[0] != "a" || c.Categories[1] != "b" || c.Values[0] != 1 || c.Values[1] != 2 {
		t.Errorf("expected leading elements kept, got %v %v", c.Categories, c.Values)
	}
}

func TestNormalize_EmptyChartDropped(t *testing.T) {
	d := deckWithTopic(Topic{Chart: &ChartSpec{Type: "bar", Categories: StringList{"a"}}})
	Normalize(d, nil)
	if d.Slides[0].Topics[0].Chart != nil {
		t.Error("chart without values should be dropped")
	}
}

func TestNormalize_UnrecognizedChartTypeDefaultsToLine(t *testing.T) {
	d := deckWithTopic(Topic{Chart: &ChartSpec{Type: "pie", Values: FloatList{1}}})
	Normalize(d, nil)
	c := d.Slides[0].Topics[0].Chart
	if c.Type != ChartTypeLine {
		t.Errorf("expected type %q, got %q", ChartTypeLine, c.Type)
	}
	if c.Title != DefaultSeriesTitle {
		t.Errorf("expected default title %q, got %q", DefaultSeriesTitle, c.Title)
	}
}

func TestNormalize_NilContainers(t *testing.T) {
	d := &Deck{Title: "T", Slides: SlideList{{Title: "S"}}}
	d.Slides = append(d.Slides, Slide{Title: "S2", Topics: nil})
	dd := &Deck{Title: "T"}
	Normalize(d, nil)
	Normalize(dd, nil)
	if d.Slides[0].Topics == nil || d.Slides[1].Topics == nil {
		t.Error("nil topics should become empty lists")
	}
	if dd.Slides == nil {
		t.Error("nil slides should become an empty list")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	d := deckWithTopic(Topic{
		Bullets: StringList{"b"},
		Chart:   &ChartSpec{Type: "bar", Categories: StringList{"a", "b", "c"}, Values: FloatList{1, 2}},
	})
	facts := []string{"F1", "F2"}
	Normalize(d, facts)
	first := *d.Slides[0].Topics[0].Chart
	firstSources := append(StringList(nil), d.Slides[0].Topics[0].Sources...)

	Normalize(d, facts)
	second := d.Slides[0].Topics[0]
	if !reflect.DeepEqual(*second.Chart, first) {
		t.Errorf("chart changed on second pass: %+v vs %+v", *second.Chart, first)
	}
	if !reflect.DeepEqual(second.Sources, firstSources) {
		t.Errorf("sources changed on second pass: %v vs %v", second.Sources, firstSources)
	}
}
