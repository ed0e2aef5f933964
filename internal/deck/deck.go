// Package deck defines the generated deck document and the repair and
// normalization passes that make unreliable generator output safe to render.
package deck

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Deck is the root document: one generated slide deck.
type Deck struct {
	Title      string    `json:"title"`
	Overview   string    `json:"overview"`
	Slides     SlideList `json:"slides"`
	Conclusion string    `json:"conclusion"`
}

// Slide is one content section of the deck.
type Slide struct {
	Type   string    `json:"type,omitempty"`
	Title  string    `json:"title"`
	Topics TopicList `json:"topics"`
}

// Topic is the atomic content unit within a slide.
type Topic struct {
	Subtitle string     `json:"subtitle"`
	Bullets  StringList `json:"bullets"`
	Sources  StringList `json:"sources"`
	Chart    *ChartSpec `json:"chart,omitempty"`
	Table    *TableSpec `json:"table,omitempty"`
}

// ChartSpec describes a small categorical chart attached to a topic.
type ChartSpec struct {
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Categories StringList `json:"categories"`
	Values     FloatList  `json:"values"`
}

// TableSpec describes a small table attached to a topic. Headers define
// the column count; row lengths are reconciled at render time.
type TableSpec struct {
	Headers StringList   `json:"headers"`
	Rows    []StringList `json:"rows"`
}

// The generator is not schema-constrained, so every container type below
// decodes tolerantly: shape mismatches are coerced or dropped, never
// surfaced as errors. Strictness lives on the output side (Repair and
// Normalize), not the input side.

// StringList decodes from an array of scalars, a bare scalar, or anything
// else (empty). Numbers and bools are stringified.
type StringList []string

func (s *StringList) UnmarshalJSON(b []byte) error {
	var arr []any
	if err := json.Unmarshal(b, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if str, ok := scalarString(v); ok {
				out = append(out, str)
			}
		}
		*s = out
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err == nil {
		if str, ok := scalarString(v); ok {
			*s = StringList{str}
			return nil
		}
	}
	*s = nil
	return nil
}

// FloatList decodes from an array, keeping numbers and numeric strings
// and dropping everything else.
type FloatList []float64

func (f *FloatList) UnmarshalJSON(b []byte) error {
	var arr []any
	if err := json.Unmarshal(b, &arr); err != nil {
		*f = nil
		return nil
	}
	out := make([]float64, 0, len(arr))
	for _, v := range arr {
		switch t := v.(type) {
		case float64:
			out = append(out, t)
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				out = append(out, n)
			}
		}
	}
	*f = out
	return nil
}

// TopicList decodes from an array of topics or a single bare topic
// object, which is wrapped into a one-element list.
type TopicList []Topic

func (l *TopicList) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err == nil {
		out := make([]Topic, 0, len(raws))
		for _, r := range raws {
			var t Topic
			if err := json.Unmarshal(r, &t); err == nil {
				out = append(out, t)
			}
		}
		*l = out
		return nil
	}
	var t Topic
	if err := json.Unmarshal(b, &t); err == nil {
		*l = TopicList{t}
		return nil
	}
	*l = nil
	return nil
}

// SlideList decodes from an array of slides, dropping malformed entries.
type SlideList []Slide

func (l *SlideList) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		*l = nil
		return nil
	}
	out := make([]Slide, 0, len(raws))
	for _, r := range raws {
		var s Slide
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func (c *ChartSpec) UnmarshalJSON(b []byte) error {
	type plain ChartSpec
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		// Not an object; the empty spec is dropped by normalization.
		return nil
	}
	*c = ChartSpec(p)
	return nil
}

func (t *TableSpec) UnmarshalJSON(b []byte) error {
	type plain TableSpec
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return nil
	}
	*t = TableSpec(p)
	return nil
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
