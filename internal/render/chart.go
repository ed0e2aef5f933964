package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dgallion1/deckgen/internal/deck"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	chartWidth  = 640
	chartHeight = 400

	marginLeft   = 52.0
	marginRight  = 20.0
	marginTop    = 44.0
	marginBottom = 44.0
)

// ChartRenderer draws bar and line charts as PNG images.
type ChartRenderer struct {
	face font.Face
}

// NewChartRenderer optionally loads a truetype face for chart text;
// without one the drawing context's built-in face is used.
func NewChartRenderer(fontPath string) (*ChartRenderer, error) {
	r := &ChartRenderer{}
	if fontPath != "" {
		face, err := loadFontFace(fontPath, 13)
		if err != nil {
			return nil, fmt.Errorf("load chart font: %w", err)
		}
		r.face = face
	}
	return r, nil
}

func loadFontFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse ttf: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// RenderPNG draws the chart and encodes it as PNG. The spec must carry
// matching non-empty categories and values; normalization guarantees
// this, but the invariant is re-checked here.
func (r *ChartRenderer) RenderPNG(spec *deck.ChartSpec, w io.Writer) error {
	if len(spec.Values) == 0 || len(spec.Categories) != len(spec.Values) {
		return fmt.Errorf("chart %q has misaligned categories/values", spec.Title)
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	if r.face != nil {
		dc.SetFontFace(r.face)
	}
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0.2, 0.4)
	dc.DrawStringAnchored(spec.Title, chartWidth/2, marginTop/2, 0.5, 0.5)

	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom

	maxVal := 0.0
	for _, v := range spec.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(1)
	dc.DrawLine(marginLeft, marginTop, marginLeft, marginTop+plotH)
	dc.DrawLine(marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH)
	dc.Stroke()

	n := len(spec.Values)
	step := plotW / float64(n)

	dc.SetRGB(0.13, 0.35, 0.6)
	if spec.Type == deck.ChartTypeBar {
		barW := step * 0.6
		for i, v := range spec.Values {
			if v < 0 {
				v = 0
			}
			h := (v / maxVal) * plotH
			x := marginLeft + float64(i)*step + (step-barW)/2
			dc.DrawRectangle(x, marginTop+plotH-h, barW, h)
		}
		dc.Fill()
	} else {
		dc.SetLineWidth(2)
		for i, v := range spec.Values {
			x, y := r.pointAt(i, v, step, plotH, maxVal)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		for i, v := range spec.Values {
			x, y := r.pointAt(i, v, step, plotH, maxVal)
			dc.DrawCircle(x, y, 3)
		}
		dc.Fill()
	}

	dc.SetRGB(0.16, 0.16, 0.16)
	for i, c := range spec.Categories {
		x := marginLeft + (float64(i)+0.5)*step
		dc.DrawStringAnchored(c, x, marginTop+plotH+marginBottom/2, 0.5, 0.5)
	}
	dc.DrawStringAnchored(strconv.FormatFloat(maxVal, 'f', -1, 64), marginLeft-6, marginTop, 1, 0.5)

	return dc.EncodePNG(w)
}

func (r *ChartRenderer) pointAt(i int, v, step, plotH, maxVal float64) (float64, float64) {
	if v < 0 {
		v = 0
	}
	x := marginLeft + (float64(i)+0.5)*step
	y := marginTop + plotH - (v/maxVal)*plotH
	return x, y
}
