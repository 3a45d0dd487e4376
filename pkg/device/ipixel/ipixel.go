// Package ipixel is the panel frontend: it turns high-level intents into
// protocol commands and pushes them through a transport.
package ipixel

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"ipixel/pkg/proto"
	"ipixel/pkg/render"
	"ipixel/pkg/transport"
)

const (
	DefaultWidth  = 32
	DefaultHeight = 32

	// DefaultBuffer is the device memory slot frames are written to.
	DefaultBuffer = 1
)

func New(tr transport.Transport, renderer *render.Renderer, logger *zap.Logger, opts ...Option) (proto.Control, error) {
	p := &Panel{
		tr:       tr,
		renderer: renderer,
		logger:   logger,
		width:    DefaultWidth,
		height:   DefaultHeight,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := tr.Notify(p.onNotify); err != nil {
		return nil, errors.Wrap(err, "enable notifications")
	}

	return p, nil
}

type Panel struct {
	tr       transport.Transport
	renderer *render.Renderer
	logger   *zap.Logger
	width    int
	height   int
}

func (p *Panel) Power(on bool) error {
	return p.send(proto.Power(on))
}

func (p *Panel) SetDIYMode(mode uint8) error {
	return p.send(proto.DIYMode(mode))
}

func (p *Panel) SetDefaultMode() error {
	return p.send(proto.DefaultMode())
}

// ShowImage fills the image to the panel dimensions when needed, encodes it
// as PNG and uploads it into the given buffer slot.
func (p *Panel) ShowImage(img image.Image, buffer uint8) error {
	b := img.Bounds()
	if b.Dx() != p.width || b.Dy() != p.height {
		img = imaging.Fill(img, p.width, p.height, imaging.Center, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrap(err, "png encode")
	}

	return p.ShowPNG(buf.Bytes(), buffer)
}

// ShowPNG uploads pre-encoded PNG bytes as-is. The caller is responsible
// for the image matching the panel dimensions.
func (p *Panel) ShowPNG(pngBytes []byte, buffer uint8) error {
	cmd, err := proto.Image(pngBytes, buffer)
	if err != nil {
		return errors.Wrap(err, "encode image command")
	}
	return p.send(cmd)
}

// ShowText renders the request and uploads the result. Zero request
// dimensions default to the panel dimensions.
func (p *Panel) ShowText(req render.Request) error {
	if req.Width == 0 {
		req.Width = p.width
	}
	if req.Height == 0 {
		req.Height = p.height
	}

	pngBytes, err := p.renderer.Render(req)
	if err != nil {
		return errors.Wrap(err, "render text")
	}

	return p.ShowPNG(pngBytes, DefaultBuffer)
}
