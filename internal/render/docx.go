package render

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/deckgen/internal/deck"
	"github.com/dgallion1/deckgen/internal/slides"
	"github.com/fumiama/go-docx"
)

// Run colors, hex without the leading #.
const (
	headingColor = "003366"
	bodyColor    = "282828"
	sourceColor  = "787878"
)

// DocxRenderer writes the deck as a Word document: one heading plus
// body section per slide descriptor, charts embedded as inline PNGs,
// tables as real docx tables.
type DocxRenderer struct {
	log          *slog.Logger
	templatePath string
	charts       *ChartRenderer
}

func (r *DocxRenderer) Render(descs []slides.Descriptor, outputPath string) error {
	doc := r.load()

	for i, d := range descs {
		if i > 0 {
			doc.AddParagraph()
		}
		doc.AddParagraph().AddText(d.Title).Size("28").Color(headingColor).Bold()
		r.renderBlocks(doc, d.Blocks)
		for _, c := range d.Charts {
			r.renderChart(doc, c)
		}
		for _, t := range d.Tables {
			r.renderTable(doc, t)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// load opens the optional template document, falling back to a blank
// themed document when it is missing or unreadable.
func (r *DocxRenderer) load() *docx.Docx {
	if r.templatePath != "" {
		f, err := os.Open(r.templatePath)
		if err == nil {
			defer f.Close()
			if st, err := f.Stat(); err == nil {
				if doc, err := docx.Parse(f, st.Size()); err == nil {
					return doc
				}
			}
		}
		r.log.Warn("template unusable, starting from a blank document", "path", r.templatePath)
	}
	return docx.New().WithDefaultTheme()
}

func (r *DocxRenderer) renderBlocks(doc *docx.Docx, blocks []slides.Block) {
	for _, b := range blocks {
		switch b.Kind {
		case slides.BlockSubtitle:
			doc.AddParagraph().AddText(b.Text).Size("20").Color(headingColor).Bold()
		case slides.BlockBullet:
			doc.AddParagraph().AddText("• " + b.Text).Size("16").Color(bodyColor)
		case slides.BlockSources:
			doc.AddParagraph().AddText(b.Text).Size("10").Color(sourceColor).Italic()
		case slides.BlockSpacer:
			doc.AddParagraph()
		}
	}
}

func (r *DocxRenderer) renderChart(doc *docx.Docx, spec *deck.ChartSpec) {
	if len(spec.Values) == 0 || len(spec.Categories) != len(spec.Values) {
		r.log.Warn("skipping chart: invalid categories/values", "chart", spec.Title)
		return
	}

	// go-docx embeds drawings from a file path, so the PNG goes through
	// a temp file.
	tmp, err := os.CreateTemp("", "deckgen-chart-*.png")
	if err != nil {
		r.log.Warn("skipping chart: temp file", "chart", spec.Title, "error", err)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	err = r.charts.RenderPNG(spec, tmp)
	tmp.Close()
	if err != nil {
		r.log.Warn("failed to render chart", "chart", spec.Title, "error", err)
		return
	}

	if _, err := doc.AddParagraph().AddInlineDrawingFrom(tmpPath); err != nil {
		r.log.Warn("failed to embed chart", "chart", spec.Title, "error", err)
	}
}

func (r *DocxRenderer) renderTable(doc *docx.Docx, spec *deck.TableSpec) {
	cols := len(spec.Headers)
	if cols == 0 {
		r.log.Warn("skipping table: no headers")
		return
	}

	tbl := doc.AddTable(len(spec.Rows)+1, cols, 8000, nil)
	for j, h := range spec.Headers {
		tbl.TableRows[0].TableCells[j].AddParagraph().AddText(h).Bold()
	}
	for i, row := range spec.Rows {
		for j, cell := range fitRow(row, cols) {
			tbl.TableRows[i+1].TableCells[j].AddParagraph().AddText(cell)
		}
	}
}
