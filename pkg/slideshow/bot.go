package slideshow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	tele "gopkg.in/telebot.v3"

	"ipixel/pkg/device/ipixel"
	"ipixel/pkg/proto"
	"ipixel/pkg/render"
)

func NewBot(token string, dev proto.Control, params *Params, d *Drawer, h *History) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:      b,
		dev:    dev,
		params: params,
		d:      d,
		h:      h,
	}, nil
}

type Bot struct {
	b      *tele.Bot
	dev    proto.Control
	params *Params
	d      *Drawer
	h      *History
}

func (b *Bot) handleBase() {
	b.b.Handle("/on", func(context tele.Context) error {
		if err := b.dev.Power(true); err != nil {
			return context.Reply(fmt.Sprintf("power on failed: %s", err))
		}

		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/off", func(context tele.Context) error {
		if err := b.dev.Power(false); err != nil {
			return context.Reply(fmt.Sprintf("power off failed: %s", err))
		}

		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/default", func(context tele.Context) error {
		if err := b.dev.SetDefaultMode(); err != nil {
			return context.Reply(fmt.Sprintf("set default failed: %s", err))
		}

		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/pause", func(context tele.Context) error {
		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.params.Wakeup()
		return context.Reply("OK")
	})
}

func (b *Bot) handleConfig() {
	b.b.Handle("/interval", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(b.params.ChangeWait.String())
		}

		duration, err := time.ParseDuration(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.params.ChangeWait = duration
		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/mode", func(context tele.Context) error {
		in := context.Message().Payload
		parsed, err := strconv.ParseUint(in, 10, 8)
		if err != nil {
			return context.Reply(fmt.Sprintf("bad mode: %s", err))
		}

		if err := b.dev.SetDIYMode(uint8(parsed)); err != nil {
			return context.Reply(fmt.Sprintf("set mode failed: %s", err))
		}

		return context.Reply("OK")
	})
}

func (b *Bot) handleAction() {
	b.b.Handle("/text", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply("usage: /text <message>")
		}

		b.params.Pause()
		if err := b.dev.ShowText(render.Request{Text: in, Antialias: true}); err != nil {
			return context.Reply(fmt.Sprintf("show text failed: %s", err))
		}

		return context.Reply("OK")
	})

	b.b.Handle("/image", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply("usage: /image <url>")
		}

		item := Item{Name: Filename(in), URL: in}
		filled, err := b.d.Filled(item)
		if err != nil {
			return context.Reply(fmt.Sprintf("fetch failed: %s", err))
		}

		b.params.Pause()
		if err := b.dev.ShowImage(filled, ipixel.DefaultBuffer); err != nil {
			return context.Reply(fmt.Sprintf("show image failed: %s", err))
		}

		return context.Reply("OK")
	})

	b.b.Handle("/prev", func(context tele.Context) error {
		log := b.h.Prev()
		if log == nil {
			return context.Reply("Previous no item")
		}

		if err := b.dev.ShowImage(log.Filled, ipixel.DefaultBuffer); err != nil {
			return context.Reply(fmt.Sprintf("show image failed: %s", err))
		}

		b.params.Reset(b.params.ChangeWait)
		b.h.Push(log)

		return context.Reply("OK")
	})

	b.b.Handle("/info", func(context tele.Context) error {
		log := b.h.Curr()
		if log == nil {
			return context.Reply("Current no item")
		}

		w, h := b.params.Size()
		lines := []string{
			fmt.Sprintf("Name: %s", log.Item.Name),
			fmt.Sprintf("Panel: %dx%d", w, h),
			fmt.Sprintf("Source size: %s", bytesize.New(float64(log.Size)).String()),
		}
		if log.Item.URL != "" {
			lines = append(lines, fmt.Sprintf("URL: %s", log.Item.URL))
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle("/logs", func(context tele.Context) error {
		var lines []string
		for _, log := range b.h.Logs() {
			lines = append(lines, log.Item.Name)
		}

		return context.Reply(strings.Join(lines, "\n"))
	})
}

func (b *Bot) Start() {
	b.handleBase()
	b.handleConfig()
	b.handleAction()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
