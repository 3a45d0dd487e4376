package render

import (
	"image"
	"image/color"
)

// NewMono returns a 1-bit canvas with every pixel off.
func NewMono(r image.Rectangle) *Mono {
	return &Mono{
		pixels: make([]bool, r.Dx()*r.Dy()),
		stride: r.Dx(),
		bounds: r,
	}
}

// Mono is a two-level canvas for non-antialiased text. It implements the
// draw.Image interface; Set thresholds incoming colors at 50% luminance so
// partial glyph coverage snaps to hard on/off pixels.
type Mono struct {
	pixels []bool
	stride int
	bounds image.Rectangle
}

// Bounds implements the image.Image (and draw.Image) interface.
func (m *Mono) Bounds() image.Rectangle {
	return m.bounds
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (m *Mono) ColorModel() color.Model {
	return monoModel{}
}

// At implements the image.Image (and draw.Image) interface.
func (m *Mono) At(x, y int) color.Color {
	if !(image.Pt(x, y).In(m.bounds)) {
		return monoBit(false)
	}
	i := (y-m.bounds.Min.Y)*m.stride + (x - m.bounds.Min.X)
	return monoBit(m.pixels[i])
}

// Set implements the draw.Image interface.
func (m *Mono) Set(x, y int, c color.Color) {
	if !(image.Pt(x, y).In(m.bounds)) {
		return
	}
	i := (y-m.bounds.Min.Y)*m.stride + (x - m.bounds.Min.X)
	m.pixels[i] = isOn(c)
}

// On reports whether the pixel at (x, y) is lit.
func (m *Mono) On(x, y int) bool {
	if !(image.Pt(x, y).In(m.bounds)) {
		return false
	}
	return m.pixels[(y-m.bounds.Min.Y)*m.stride+(x-m.bounds.Min.X)]
}

type monoModel struct{}

func (monoModel) Convert(c color.Color) color.Color {
	return monoBit(isOn(c))
}

// isOn maps a color to a single bit using the same luma weights as
// color.GrayModel, cut at half intensity.
func isOn(c color.Color) bool {
	if b, ok := c.(monoBit); ok {
		return bool(b)
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b) / 1000
	return y >= 0x8000
}

// monoBit implements the color.Color interface.
type monoBit bool

// RGBA implements the color.Color interface. An on pixel is full white, an
// off pixel full black; there is no transparency.
func (p monoBit) RGBA() (r, g, b, a uint32) {
	if p {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}
