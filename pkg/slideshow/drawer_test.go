package slideshow

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"ipixel/pkg/render"
)

// fakeControl records the frames a drawer pushes.
type fakeControl struct {
	shown []image.Image
}

func (f *fakeControl) Power(on bool) error         { return nil }
func (f *fakeControl) SetDIYMode(mode uint8) error { return nil }
func (f *fakeControl) SetDefaultMode() error       { return nil }
func (f *fakeControl) ShowPNG(p []byte, b uint8) error {
	img, err := png.Decode(bytes.NewBuffer(p))
	if err != nil {
		return err
	}
	f.shown = append(f.shown, img)
	return nil
}
func (f *fakeControl) ShowImage(img image.Image, b uint8) error {
	f.shown = append(f.shown, img)
	return nil
}
func (f *fakeControl) ShowText(req render.Request) error { return nil }

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, testFrame(w, h)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDrawerDrawing(t *testing.T) {
	srcPath := t.TempDir()
	writePNG(t, filepath.Join(srcPath, "one.png"), 100, 60)

	dir, err := NewDir(srcPath)
	if err != nil {
		t.Fatal(err)
	}

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	p := NewParams(32, 32)
	items, err := dir.List()
	if err != nil {
		t.Fatal(err)
	}
	p.SetItems(items)

	dev := &fakeControl{}
	history := NewHistory()
	d := NewDrawer(dev, p, dir, nil, cache, history, zap.NewNop())

	if err := d.Drawing(); err != nil {
		t.Fatal(err)
	}

	if len(dev.shown) != 1 {
		t.Fatalf("shown %d frames, want 1", len(dev.shown))
	}
	if b := dev.shown[0].Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("frame %dx%d, want filled to 32x32", b.Dx(), b.Dy())
	}

	if history.Curr() == nil || history.Curr().Item.Name != "one.png" {
		t.Error("history not updated")
	}
	if history.Curr().Size == 0 {
		t.Error("source size not recorded on first fill")
	}

	// Second rotation loops onto the same item and hits the cache.
	if err := d.Drawing(); err != nil {
		t.Fatal(err)
	}
	if len(dev.shown) != 2 {
		t.Fatalf("shown %d frames, want 2", len(dev.shown))
	}
	if history.Curr().Size != 0 {
		t.Error("cache hit should not record a source size")
	}
}

func TestDrawerEmptyRotation(t *testing.T) {
	p := NewParams(32, 32)
	cache, _ := NewCache("")
	d := NewDrawer(&fakeControl{}, p, nil, nil, cache, NewHistory(), zap.NewNop())

	if err := d.Drawing(); err == nil {
		t.Fatal("expected error for empty rotation")
	}
}
