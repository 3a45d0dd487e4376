package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"ipixel/pkg/proto"
	"ipixel/pkg/render"
)

func New(addr string) (proto.Control, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Power(on bool) error {
	if on {
		return c.rpc.Call("Service.Command", "on", nil)
	}
	return c.rpc.Call("Service.Command", "off", nil)
}

func (c *Client) SetDIYMode(mode uint8) error {
	return c.rpc.Call("Service.SetDIYMode", SetModeRequest{Mode: mode}, nil)
}

func (c *Client) SetDefaultMode() error {
	return c.rpc.Call("Service.Command", "default", nil)
}

func (c *Client) ShowImage(img image.Image, buffer uint8) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return c.ShowPNG(buf.Bytes(), buffer)
}

func (c *Client) ShowPNG(pngBytes []byte, buffer uint8) error {
	return c.rpc.Call("Service.ShowPNG", &ShowPNGRequest{
		Buffer: buffer,
		PNG:    pngBytes,
	}, nil)
}

func (c *Client) ShowText(req render.Request) error {
	return c.rpc.Call("Service.ShowText", &ShowTextRequest{
		Text:      req.Text,
		Width:     req.Width,
		Height:    req.Height,
		Antialias: req.Antialias,
		FontSize:  req.FontSize,
		Font:      req.Font,
	}, nil)
}
