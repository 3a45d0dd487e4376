package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"go.uber.org/zap"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	lib, err := NewLibrary(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLibrary failed: %v", err)
	}
	return NewRenderer(lib, zap.NewNop())
}

func decodePNG(t *testing.T, bs []byte) image.Image {
	t.Helper()

	img, err := png.Decode(bytes.NewBuffer(bs))
	if err != nil {
		t.Fatalf("png decode failed: %v", err)
	}
	return img
}

func TestRenderDimensions(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"mono 32x32", Request{Text: "HI", Width: 32, Height: 32}},
		{"mono 64x16", Request{Text: "scroll", Width: 64, Height: 16}},
		{"antialias 32x32", Request{Text: "HI", Width: 32, Height: 32, Antialias: true}},
		{"multiline", Request{Text: "AB\nCD", Width: 48, Height: 48}},
		{"empty text", Request{Text: "", Width: 32, Height: 32}},
		{"fixed size", Request{Text: "X", Width: 32, Height: 32, FontSize: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs, err := r.Render(tt.req)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if len(bs) == 0 {
				t.Fatal("empty PNG output")
			}

			img := decodePNG(t, bs)
			b := img.Bounds()
			if b.Dx() != tt.req.Width || b.Dy() != tt.req.Height {
				t.Errorf("decoded %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.req.Width, tt.req.Height)
			}
		})
	}
}

func TestRenderAntialiasedHI(t *testing.T) {
	r := newTestRenderer(t)

	bs, err := r.Render(Request{Text: "HI", Width: 32, Height: 32, Antialias: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img := decodePNG(t, bs)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("decoded %dx%d, want 32x32", b.Dx(), b.Dy())
	}

	// Some pixel must be lit, and the corners stay black.
	lit := false
	for y := 0; y < 32 && !lit; y++ {
		for x := 0; x < 32; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r|g|b != 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("no pixel lit")
	}

	for _, pt := range []image.Point{{0, 0}, {31, 0}, {0, 31}, {31, 31}} {
		if r, g, b, _ := img.At(pt.X, pt.Y).RGBA(); r|g|b != 0 {
			t.Errorf("corner %v not black", pt)
		}
	}
}

func TestRenderMonoIsBinary(t *testing.T) {
	r := newTestRenderer(t)

	bs, err := r.Render(Request{Text: "HI", Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img := decodePNG(t, bs)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if !(c.R == 0 && c.G == 0 && c.B == 0) && !(c.R == 255 && c.G == 255 && c.B == 255) {
				t.Fatalf("pixel (%d,%d) = %v, want pure black or white", x, y, c)
			}
		}
	}
}

func TestRenderMissingFontFallsBack(t *testing.T) {
	r := newTestRenderer(t)

	bs, err := r.Render(Request{Text: "HI", Width: 32, Height: 32, FontSize: 12, Font: "no-such-font"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := decodePNG(t, bs).Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("decoded %dx%d, want 32x32", b.Dx(), b.Dy())
	}
}

func TestMonoThreshold(t *testing.T) {
	m := NewMono(image.Rect(0, 0, 4, 4))

	m.Set(0, 0, color.White)
	m.Set(1, 0, color.Black)
	m.Set(2, 0, color.Gray{Y: 0x70})
	m.Set(3, 0, color.Gray{Y: 0x90})

	tests := []struct {
		x    int
		want bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{3, true},
	}
	for _, tt := range tests {
		if got := m.On(tt.x, 0); got != tt.want {
			t.Errorf("On(%d,0) = %v, want %v", tt.x, got, tt.want)
		}
	}

	// Out of bounds stays silent and off.
	m.Set(-1, -1, color.White)
	if m.On(-1, -1) {
		t.Error("out of bounds pixel reported on")
	}
}
