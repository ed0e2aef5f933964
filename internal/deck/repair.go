package deck

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fallback content used when generator output cannot be recovered.
const (
	FallbackTitle  = "Parsing Failed"
	FallbackSource = "General industry reports"

	// DefaultSeriesTitle labels a chart whose title is missing.
	DefaultSeriesTitle = "Series"

	overviewPreviewLimit = 500
)

// parseStrategies is the ordered repair chain. Each strategy is total:
// it returns nil on a miss and never panics or errors. Repair
// short-circuits on the first hit.
var parseStrategies = []func(string) *Deck{
	parseDirect,
	parseEmbedded,
}

// Repair coerces raw generator output into a structurally valid Deck.
// It never fails: input that defeats every parse strategy yields a
// sentinel deck carrying a preview of the raw text in its overview.
func Repair(raw string) *Deck {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		for _, parse := range parseStrategies {
			if d := parse(trimmed); d != nil {
				return d
			}
		}
	}
	return &Deck{
		Title:    FallbackTitle,
		Overview: preview(raw),
		Slides:   SlideList{},
	}
}

// parseDirect parses the text as JSON, unwrapping one level of
// double-encoding when the payload is itself a JSON string holding an
// object.
func parseDirect(raw string) *Deck {
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err == nil {
		inner = strings.TrimSpace(inner)
		if !strings.HasPrefix(inner, "{") {
			return nil
		}
		raw = inner
	}
	return decodeDeck(raw)
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// parseEmbedded extracts the widest {...} span from surrounding prose
// and strips trailing commas before closing braces, a common malformed
// generator pattern, then parses the cleaned span.
func parseEmbedded(raw string) *Deck {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil
	}
	candidate := trailingCommaRe.ReplaceAllString(raw[start:end+1], "$1")
	return decodeDeck(candidate)
}

func decodeDeck(raw string) *Deck {
	var d Deck
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil
	}
	if d.Slides == nil {
		d.Slides = SlideList{}
	}
	return &d
}

// preview truncates without splitting a multibyte rune.
func preview(raw string) string {
	if len(raw) <= overviewPreviewLimit {
		return raw
	}
	n := overviewPreviewLimit
	for n > 0 && !utf8.RuneStart(raw[n]) {
		n--
	}
	return raw[:n]
}
