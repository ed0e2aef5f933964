package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/deckgen/internal/deck"
	"github.com/dgallion1/deckgen/internal/slides"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; color: #282828; }
h1, h2 { color: #003366; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
em { color: #787878; font-size: 0.85em; }
img { max-width: 100%%; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLRenderer writes a single-file HTML preview of the deck: the
// slides become markdown converted with goldmark, with charts inlined
// as data-URI images.
type HTMLRenderer struct {
	log    *slog.Logger
	charts *ChartRenderer
}

func (r *HTMLRenderer) Render(descs []slides.Descriptor, outputPath string) error {
	src := r.buildMarkdown(descs)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(src), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	title := "Deck"
	if len(descs) > 0 && descs[0].Title != "" {
		title = descs[0].Title
	}
	page := fmt.Sprintf(htmlShell, html.EscapeString(title), body.String())

	if err := os.WriteFile(outputPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func (r *HTMLRenderer) buildMarkdown(descs []slides.Descriptor) string {
	var sb strings.Builder
	for i, d := range descs {
		if i == 0 {
			sb.WriteString("# " + d.Title + "\n\n")
		} else {
			sb.WriteString("## " + d.Title + "\n\n")
		}
		for _, b := range d.Blocks {
			switch b.Kind {
			case slides.BlockSubtitle:
				sb.WriteString("**" + b.Text + "**\n\n")
			case slides.BlockBullet:
				sb.WriteString("- " + b.Text + "\n")
			case slides.BlockSources:
				sb.WriteString("\n*" + b.Text + "*\n\n")
			case slides.BlockSpacer:
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
		for _, c := range d.Charts {
			r.appendChart(&sb, c)
		}
		for _, t := range d.Tables {
			appendTable(&sb, t)
		}
	}
	return sb.String()
}

func (r *HTMLRenderer) appendChart(sb *strings.Builder, spec *deck.ChartSpec) {
	if len(spec.Values) == 0 || len(spec.Categories) != len(spec.Values) {
		r.log.Warn("skipping chart: invalid categories/values", "chart", spec.Title)
		return
	}
	var png bytes.Buffer
	if err := r.charts.RenderPNG(spec, &png); err != nil {
		r.log.Warn("failed to render chart", "chart", spec.Title, "error", err)
		return
	}
	fmt.Fprintf(sb, "![%s](data:image/png;base64,%s)\n\n",
		spec.Title, base64.StdEncoding.EncodeToString(png.Bytes()))
}

func appendTable(sb *strings.Builder, spec *deck.TableSpec) {
	cols := len(spec.Headers)
	if cols == 0 {
		return
	}
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" " + strings.ReplaceAll(c, "|", "\\|") + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(spec.Headers)
	writeRow(fitRow(nil, cols, "---"))
	for _, row := range spec.Rows {
		writeRow(fitRow(row, cols))
	}
	sb.WriteString("\n")
}
