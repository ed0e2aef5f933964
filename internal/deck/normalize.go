package deck

import "fmt"

// Recognized chart types. Anything else is rendered as a line chart.
const (
	ChartTypeBar  = "bar"
	ChartTypeLine = "line"
)

// Topics lacking sources get at most this many leading facts.
const maxBackfillSources = 2

// Normalize enforces the deck invariants in place and returns the deck:
// every topic ends up with a non-empty sources list, and every surviving
// chart has matching non-empty categories and values. Normalizing an
// already-normalized deck is a no-op.
func Normalize(d *Deck, facts []string) *Deck {
	if d.Slides == nil {
		d.Slides = SlideList{}
	}
	for i := range d.Slides {
		s := &d.Slides[i]
		if s.Topics == nil {
			s.Topics = TopicList{}
		}
		for j := range s.Topics {
			t := &s.Topics[j]
			backfillSources(t, facts)
			t.Chart = repairChart(t.Chart)
		}
	}
	return d
}

func backfillSources(t *Topic, facts []string) {
	if len(t.Sources) > 0 {
		return
	}
	if len(facts) > 0 {
		n := min(len(facts), maxBackfillSources)
		t.Sources = append(StringList(nil), facts[:n]...)
		return
	}
	t.Sources = StringList{FallbackSource}
}

// repairChart aligns categories and values, or drops the chart when
// nothing renderable remains. Missing categories are synthesized as
// "Item 1..N"; mismatched lengths are truncated to the shorter side.
func repairChart(c *ChartSpec) *ChartSpec {
	if c == nil {
		return nil
	}
	if len(c.Values) == 0 {
		return nil
	}
	if len(c.Categories) == 0 {
		c.Categories = make(StringList, len(c.Values))
		for i := range c.Values {
			c.Categories[i] = fmt.Sprintf("Item %d", i+1)
		}
	}
	if len(c.Categories) != len(c.Values) {
		n := min(len(c.Categories), len(c.Values))
		c.Categories = c.Categories[:n]
		c.Values = c.Values[:n]
	}
	if c.Type != ChartTypeBar && c.Type != ChartTypeLine {
		c.Type = ChartTypeLine
	}
	if c.Title == "" {
		c.Title = DefaultSeriesTitle
	}
	return c
}
