// Package slides maps a normalized deck onto an ordered sequence of
// renderer-facing slide descriptors. The mapping is pure: no network or
// generation calls, no mutation of the deck.
package slides

import (
	"regexp"
	"strings"

	"github.com/dgallion1/deckgen/internal/deck"
)

// Titles and fallbacks for the fixed frame slides.
const (
	DefaultDeckTitle  = "Untitled Presentation"
	DefaultSlideTitle = "Slide"
	OverviewTitle     = "Overview"
	ConclusionTitle   = "Conclusion"

	maxOverviewLines = 3
)

// BlockKind distinguishes the text blocks within a slide body.
type BlockKind int

const (
	BlockSubtitle BlockKind = iota
	BlockBullet
	BlockSources
	BlockSpacer
)

// Block is one body paragraph of a slide.
type Block struct {
	Kind BlockKind
	Text string
}

// Descriptor is the fully resolved representation of one visual slide.
type Descriptor struct {
	Title  string
	Blocks []Block
	Charts []*deck.ChartSpec
	Tables []*deck.TableSpec
}

// Map produces the slide sequence for a deck: title slide, overview,
// one slide per content section, and a conclusion slide when the deck
// has a conclusion.
func Map(d *deck.Deck) []Descriptor {
	out := make([]Descriptor, 0, len(d.Slides)+3)

	title := d.Title
	if title == "" {
		title = DefaultDeckTitle
	}
	out = append(out, Descriptor{Title: title})

	overview := Descriptor{Title: OverviewTitle}
	for _, line := range splitOverview(d.Overview, maxOverviewLines) {
		overview.Blocks = append(overview.Blocks, Block{Kind: BlockBullet, Text: line})
	}
	out = append(out, overview)

	for _, s := range d.Slides {
		out = append(out, mapSlide(s))
	}

	if d.Conclusion != "" {
		out = append(out, Descriptor{
			Title:  ConclusionTitle,
			Blocks: []Block{{Kind: BlockBullet, Text: d.Conclusion}},
		})
	}
	return out
}

func mapSlide(s deck.Slide) Descriptor {
	desc := Descriptor{Title: s.Title}
	if desc.Title == "" {
		desc.Title = DefaultSlideTitle
	}
	for i, t := range s.Topics {
		if t.Subtitle != "" {
			desc.Blocks = append(desc.Blocks, Block{Kind: BlockSubtitle, Text: t.Subtitle})
		}
		for _, b := range t.Bullets {
			desc.Blocks = append(desc.Blocks, Block{Kind: BlockBullet, Text: b})
		}
		if len(t.Sources) > 0 {
			desc.Blocks = append(desc.Blocks, Block{
				Kind: BlockSources,
				Text: "Sources: " + strings.Join(t.Sources, "; "),
			})
		}
		if t.Chart != nil {
			desc.Charts = append(desc.Charts, t.Chart)
		}
		if t.Table != nil {
			desc.Tables = append(desc.Tables, t.Table)
		}
		if i < len(s.Topics)-1 {
			desc.Blocks = append(desc.Blocks, Block{Kind: BlockSpacer})
		}
	}
	return desc
}

var sentenceEndRe = regexp.MustCompile(`[.?!]`)

// splitOverview breaks the overview into up to max sentence-like
// segments. If no segments are found the whole text stands alone.
func splitOverview(text string, max int) []string {
	var lines []string
	for _, part := range sentenceEndRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lines = append(lines, part)
		if len(lines) == max {
			break
		}
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
