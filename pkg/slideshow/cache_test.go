package slideshow

import (
	"image"
	"image/color"
	"testing"
)

func testFrame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), A: 0xFF})
		}
	}
	return img
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache("")
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SaveImage("x", testFrame(4, 4)); err != nil {
		t.Errorf("disabled cache save: %v", err)
	}
	if exists, _, err := c.LoadImage("x", 4, 4); err != nil || exists {
		t.Errorf("disabled cache load: exists=%v err=%v", exists, err)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if exists, _, err := c.LoadImage("frame", 8, 8); err != nil || exists {
		t.Fatalf("empty cache: exists=%v err=%v", exists, err)
	}

	if err := c.SaveImage("frame", testFrame(8, 8)); err != nil {
		t.Fatal(err)
	}

	exists, img, err := c.LoadImage("frame", 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("saved frame not found")
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("loaded %dx%d, want 8x8", b.Dx(), b.Dy())
	}

	// A different dimension is a different key.
	if exists, _, _ := c.LoadImage("frame", 16, 16); exists {
		t.Error("frame found under wrong dimensions")
	}
}
