package deck

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRepair_ValidJSON(t *testing.T) {
	d := Repair(`{"title":"T","overview":"O","slides":[],"conclusion":"C"}`)
	if d.Title != "T" || d.Overview != "O" || d.Conclusion != "C" {
		t.Errorf("unexpected deck: %+v", d)
	}
	if d.Slides == nil || len(d.Slides) != 0 {
		t.Errorf("expected empty non-nil slides, got %v", d.Slides)
	}
}

func TestRepair_UnparseableYieldsSentinel(t *testing.T) {
	inputs := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"prose", "not json at all"},
		{"bare array", "[1,2,3]"},
		{"bare string", `"just a string"`},
	}
	for _, tc := range inputs {
		t.Run(tc.name, func(t *testing.T) {
			d := Repair(tc.raw)
			if d.Title != FallbackTitle {
				t.Errorf("expected sentinel title %q, got %q", FallbackTitle, d.Title)
			}
			if d.Slides == nil {
				t.Error("sentinel deck must have non-nil slides")
			}
			if d.Conclusion != "" {
				t.Errorf("expected empty conclusion, got %q", d.Conclusion)
			}
		})
	}
}

func TestRepair_SentinelOverviewPreview(t *testing.T) {
	raw := strings.Repeat("x", 800)
	d := Repair(raw)
	if d.Title != FallbackTitle {
		t.Fatalf("expected sentinel, got title %q", d.Title)
	}
	if len(d.Overview) != 500 {
		t.Errorf("expected 500-char preview, got %d", len(d.Overview))
	}
	if d.Overview != raw[:500] {
		t.Error("preview should be the leading raw text")
	}
}

func TestRepair_SentinelPreviewKeepsRunesIntact(t *testing.T) {
	// 3-byte runes put the 500-byte limit mid-rune.
	raw := strings.Repeat("日", 200)
	d := Repair(raw)
	if d.Title != FallbackTitle {
		t.Fatalf("expected sentinel, got title %q", d.Title)
	}
	if !utf8.ValidString(d.Overview) {
		t.Error("preview must not split a multibyte rune")
	}
	if len(d.Overview) != 498 {
		t.Errorf("expected truncation back to a rune boundary (498 bytes), got %d", len(d.Overview))
	}
	if !strings.HasPrefix(raw, d.Overview) {
		t.Error("preview should be a prefix of the raw text")
	}
}

func TestRepair_TrailingComma(t *testing.T) {
	d := Repair(`{"title":"T","overview":"O","slides":[],"conclusion":"C",}`)
	if d.Title != "T" || d.Overview != "O" || d.Conclusion != "C" {
		t.Errorf("trailing comma not repaired: %+v", d)
	}
}

func TestRepair_TrailingCommaInNestedArray(t *testing.T) {
	d := Repair(`{"title":"T","slides":[{"title":"S","topics":[{"bullets":["a","b",],},],},],"conclusion":""}`)
	if d.Title != "T" {
		t.Fatalf("expected title T, got %q", d.Title)
	}
	if len(d.Slides) != 1 || len(d.Slides[0].Topics) != 1 {
		t.Fatalf("unexpected structure: %+v", d.Slides)
	}
	got := d.Slides[0].Topics[0].Bullets
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected bullets: %v", got)
	}
}

func TestRepair_DoubleEncoded(t *testing.T) {
	d := Repair(`"{\"title\":\"T\"}"`)
	if d.Title != "T" {
		t.Errorf("expected nested unwrap to yield title T, got %q", d.Title)
	}
}

func TestRepair_EmbeddedInProse(t *testing.T) {
	raw := "Sure! Here is your deck:\n```json\n{\"title\":\"T\",\"overview\":\"O\",\"slides\":[],\"conclusion\":\"C\"}\n```\nEnjoy."
	d := Repair(raw)
	if d.Title != "T" || d.Conclusion != "C" {
		t.Errorf("expected embedded object to parse, got %+v", d)
	}
}

func TestRepair_ShapeIdempotent(t *testing.T) {
	for _, raw := range []string{"", "garbage", `{"title":"T"}`} {
		d := Repair(raw)
		if d.Slides == nil {
			t.Errorf("Repair(%q): slides must never be nil", raw)
		}
		// All four fields are always present with correct shallow types
		// by construction; re-repairing produces the same shape.
		d2 := Repair(raw)
		if (d.Title == "") != (d2.Title == "") || len(d.Slides) != len(d2.Slides) {
			t.Errorf("Repair(%q) is not shape-stable", raw)
		}
	}
}

func TestRepair_SingleTopicObjectCoerced(t *testing.T) {
	d := Repair(`{"title":"T","slides":[{"title":"S","topics":{"subtitle":"only","bullets":["b"]}}],"conclusion":""}`)
	if len(d.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(d.Slides))
	}
	topics := d.Slides[0].Topics
	if len(topics) != 1 || topics[0].Subtitle != "only" {
		t.Errorf("expected bare topic object wrapped into list, got %+v", topics)
	}
}

func TestRepair_TolerantScalars(t *testing.T) {
	d := Repair(`{"title":"T","slides":[{"title":"S","topics":[{"subtitle":"x","bullets":[1,true,"s",null,{"k":"v"}]}]}]}`)
	got := d.Slides[0].Topics[0].Bullets
	want := []string{"1", "true", "s"}
	if len(got) != len(want) {
		t.Fatalf("expected %d bullets, got %v", len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("bullet[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestRepair_ChartValueCoercion(t *testing.T) {
	d := Repair(`{"title":"T","slides":[{"title":"S","topics":[{"chart":{"type":"bar","values":[1,"2.5","n/a",3]}}]}]}`)
	c := d.Slides[0].Topics[0].Chart
	if c == nil {
		t.Fatal("expected chart to survive decoding")
	}
	want := []float64{1, 2.5, 3}
	if len(c.Values) != len(want) {
		t.Fatalf("expected values %v, got %v", want, c.Values)
	}
	for i, w := range want {
		if c.Values[i] != w {
			t.Errorf("value[%d]: expected %v, got %v", i, w, c.Values[i])
		}
	}
}

func TestRepair_NonObjectChartAbsorbed(t *testing.T) {
	d := Repair(`{"title":"T","slides":[{"title":"S","topics":[{"subtitle":"x","chart":"oops"}]}]}`)
	topic := d.Slides[0].Topics[0]
	if topic.Subtitle != "x" {
		t.Fatalf("topic should survive a malformed chart, got %+v", topic)
	}
	if topic.Chart != nil && len(topic.Chart.Values) != 0 {
		t.Errorf("malformed chart should decode empty, got %+v", topic.Chart)
	}
}
