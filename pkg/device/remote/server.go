package remote

import (
	"context"
	"log"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"ipixel/pkg/proto"
	"ipixel/pkg/render"
)

// Proxy exposes a panel over net/rpc so headless hosts can drive it.
func Proxy(dev proto.Control, srv *http.Server, lifecycle fx.Lifecycle) error {
	svc := &Service{dev: dev}
	if err := rpc.Register(svc); err != nil {
		return err
	}

	rpc.HandleHTTP()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatal(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	dev proto.Control
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	switch name {
	case "on":
		return s.dev.Power(true)
	case "off":
		return s.dev.Power(false)
	case "default":
		return s.dev.SetDefaultMode()
	}

	return errors.New("unknown command")
}

func (s *Service) SetDIYMode(req SetModeRequest, _ *EmptyResponse) error {
	return s.dev.SetDIYMode(req.Mode)
}

func (s *Service) ShowPNG(req *ShowPNGRequest, _ *EmptyResponse) error {
	return s.dev.ShowPNG(req.PNG, req.Buffer)
}

func (s *Service) ShowText(req *ShowTextRequest, _ *EmptyResponse) error {
	return s.dev.ShowText(render.Request{
		Text:      req.Text,
		Width:     req.Width,
		Height:    req.Height,
		Antialias: req.Antialias,
		FontSize:  req.FontSize,
		Font:      req.Font,
	})
}
