package main

import (
	"net/http"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"ipixel/pkg/device/ipixel"
	"ipixel/pkg/device/remote"
	"ipixel/pkg/proto"
	"ipixel/pkg/render"
	"ipixel/pkg/transport"
	"ipixel/pkg/transport/ble"
)

var address = flag.String("address", "", "device address")
var name = flag.String("name", ble.DefaultNamePrefix, "device name prefix")
var fonts = flag.String("fonts", "", "fonts dir")
var width = flag.Int("width", ipixel.DefaultWidth, "panel width")
var height = flag.Int("height", ipixel.DefaultHeight, "panel height")
var listen = flag.String("listen", ":9123", "listen addr")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			zap.NewDevelopment,
			func(logger *zap.Logger) (transport.Transport, error) {
				return ble.Dial(&ble.Options{Address: *address, NamePrefix: *name}, logger)
			},
			func(logger *zap.Logger) (*render.Renderer, error) {
				var fs afero.Fs
				if *fonts != "" {
					fs = afero.NewBasePathFs(afero.NewOsFs(), *fonts)
				}
				lib, err := render.NewLibrary(fs, logger)
				if err != nil {
					return nil, err
				}
				return render.NewRenderer(lib, logger), nil
			},
			func(tr transport.Transport, renderer *render.Renderer, logger *zap.Logger) (proto.Control, error) {
				return ipixel.New(tr, renderer, logger, ipixel.WithSize(*width, *height))
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
