package proto

import (
	"image"

	"ipixel/pkg/render"
)

type Control interface {
	Power(on bool) error
	SetDIYMode(mode uint8) error
	SetDefaultMode() error

	ShowImage(img image.Image, buffer uint8) error
	ShowPNG(png []byte, buffer uint8) error
	ShowText(req render.Request) error
}
