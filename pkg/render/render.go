// Package render rasterizes text into PNG frames sized for the panel.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Request describes one frame of text. Width and height are the exact pixel
// dimensions of the output. FontSize 0 means auto-fit; Font "" (or
// "Default") means the built-in font.
type Request struct {
	Text      string
	Width     int
	Height    int
	Antialias bool
	FontSize  int
	Font      string
}

func NewRenderer(lib *Library, logger *zap.Logger) *Renderer {
	return &Renderer{lib: lib, logger: logger}
}

type Renderer struct {
	lib    *Library
	logger *zap.Logger
}

// Render draws the request's text centered on a black canvas and returns
// the encoded PNG. Lines are split on '\n' with no word wrap; the caller
// controls line breaks. Font problems never fail the call, they degrade to
// the built-in fonts.
func (r *Renderer) Render(req Request) ([]byte, error) {
	lines := strings.Split(req.Text, "\n")

	var face font.Face
	if req.FontSize > 0 {
		face = r.lib.Face(req.Font, req.FontSize)
	} else {
		fit := r.lib.Fit(req.Font, lines, req.Width, req.Height)
		if fit.Exhausted {
			r.logger.With(
				zap.Int("width", req.Width),
				zap.Int("height", req.Height),
			).Warn("no font size fits, text may overflow")
		}
		face = fit.Face
	}

	rect := image.Rect(0, 0, req.Width, req.Height)

	var canvas draw.Image
	if req.Antialias {
		rgba := image.NewRGBA(rect)
		draw.Draw(rgba, rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
		canvas = rgba
	} else {
		canvas = NewMono(rect)
	}

	heights := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		_, h := lineBounds(face, line)
		heights[i] = h
		total += h
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	// Vertical centering may go negative when the text is taller than the
	// canvas; nothing is clipped here.
	y := (req.Height - total) / 2
	for i, line := range lines {
		bounds, _ := font.BoundString(face, line)
		w := (bounds.Max.X - bounds.Min.X).Ceil()
		x := (req.Width - w) / 2

		// Anchor the bounding box top-left at (x, y), not the baseline.
		d.Dot = fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		}
		d.DrawString(line)

		y += heights[i]
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgbFrame(canvas)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rgbFrame expands a 1-bit canvas to RGB so the PNG payload is uniform
// regardless of the antialias flag.
func rgbFrame(canvas draw.Image) image.Image {
	m, hit := canvas.(*Mono)
	if !hit {
		return canvas
	}

	b := m.Bounds()
	rgba := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBA{A: 0xFF}
			if m.On(x, y) {
				c = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
			}
			rgba.SetRGBA(x, y, c)
		}
	}
	return rgba
}
