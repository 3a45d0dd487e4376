package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"ipixel/pkg/device/ipixel"
	"ipixel/pkg/device/remote"
	"ipixel/pkg/proto"
	"ipixel/pkg/render"
	"ipixel/pkg/slideshow"
	"ipixel/pkg/transport/ble"
	"ipixel/pkg/transport/serialport"
)

var address = flag.String("address", "", "device address")
var name = flag.String("name", ble.DefaultNamePrefix, "device name prefix")
var serialName = flag.String("serial", "", "serial bridge name instead of BLE")
var baud = flag.Int("baud", 115200, "serial baud rate")
var remoteAddr = flag.String("remote", "", "remote proxy addr instead of a local transport")
var width = flag.Int("width", ipixel.DefaultWidth, "panel width")
var height = flag.Int("height", ipixel.DefaultHeight, "panel height")
var fonts = flag.String("fonts", "", "fonts dir")

var power = flag.String("power", "", "power the panel on/off and exit")
var mode = flag.Int("mode", -1, "set DIY mode and exit")
var defMode = flag.Bool("default-mode", false, "exit slideshow into default mode")
var text = flag.String("text", "", "text to display")
var fontName = flag.String("font", "", "font name from the fonts dir")
var fontSize = flag.Int("font-size", 0, "fixed font size, 0 for auto-fit")
var antialias = flag.Bool("antialias", true, "antialias rendered text")
var imageURL = flag.String("image", "", "image url to display")

var dir = flag.String("dir", "", "slideshow source dir")
var cacheDir = flag.String("cache", "", "filled frame cache dir")
var saveDir = flag.String("save", "", "downloaded image save dir")
var interval = flag.String("interval", "5m", "slideshow interval")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()

	p := slideshow.NewParams(*width, *height)
	if d, err := time.ParseDuration(*interval); err != nil {
		log.Fatal(err)
	} else {
		p.ChangeWait = d
	}

	var fontFs afero.Fs
	if *fonts != "" {
		fontFs = afero.NewBasePathFs(afero.NewOsFs(), *fonts)
	}
	lib, err := render.NewLibrary(fontFs, logger)
	if err != nil {
		log.Fatal(err)
	}
	renderer := render.NewRenderer(lib, logger)

	var dev proto.Control
	var devErr error

	switch {
	case *remoteAddr != "":
		dev, devErr = remote.New(*remoteAddr)
	case *serialName != "":
		port := serialport.New(*serialName)
		if err := port.Open(&serialport.Options{BaudRate: *baud, ReadTimeout: 10 * time.Millisecond}); err != nil {
			log.Fatal(err)
		}
		dev, devErr = ipixel.New(port, renderer, logger, ipixel.WithSize(*width, *height))
	default:
		cli, err := ble.Dial(&ble.Options{Address: *address, NamePrefix: *name}, logger)
		if err != nil {
			log.Fatal(err)
		}
		dev, devErr = ipixel.New(cli, renderer, logger, ipixel.WithSize(*width, *height))
	}

	if devErr != nil {
		log.Fatal(devErr)
	}

	dl, err := slideshow.NewDownloader(*saveDir, logger)
	if err != nil {
		log.Fatal(err)
	}

	cache, err := slideshow.NewCache(*cacheDir)
	if err != nil {
		log.Fatal(err)
	}

	history := slideshow.NewHistory()

	var srcDir *slideshow.Dir
	if *dir != "" {
		srcDir, err = slideshow.NewDir(*dir)
		if err != nil {
			log.Fatal(err)
		}

		items, err := srcDir.List()
		if err != nil {
			log.Fatal(err)
		}
		p.SetItems(items)
	}

	drawer := slideshow.NewDrawer(dev, p, srcDir, dl, cache, history, logger)

	// One-shot actions run and exit.
	if oneShot(dev, drawer, logger) {
		return
	}

	if *dir == "" {
		log.Fatal("nothing to do: give an action flag or --dir for a slideshow")
	}

	if err := dev.SetDIYMode(1); err != nil {
		log.Fatal(err)
	}

	var bot *slideshow.Bot
	if *tgToken != "" {
		var botErr error
		bot, botErr = slideshow.NewBot(*tgToken, dev, p, drawer, history)
		if botErr != nil {
			log.Fatal(botErr)
		}
		bot.Start()
	}

	shutdown := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		timer := time.NewTimer(time.Nanosecond)

		defer func() {
			timer.Stop()
			if bot != nil {
				bot.Stop()
			}
			if err := dev.SetDefaultMode(); err != nil {
				logger.With(zap.Error(err)).Info("restore default mode failed")
			}
			exited <- struct{}{}
		}()

		wakeupChan := p.WakeupChan()
		resetChan := p.ResetChan()

		for {
			select {
			case <-shutdown:
				return
			case <-wakeupChan:
				timer.Reset(time.Millisecond)
				continue
			case dur := <-resetChan:
				timer.Reset(dur)
				continue
			case <-timer.C:
				if p.Paused() {
					logger.Info("rotation paused, skip...")
					continue
				}
				if err := drawer.Drawing(); err != nil {
					logger.With(zap.Error(err)).Info("drawing failed")
					timer.Reset(p.ErrorWait)
				} else {
					timer.Reset(p.ChangeWait)
				}
			}
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	logger.Info("shutting down")
	shutdown <- struct{}{}
	<-exited
	logger.Info("exited")
}

// oneShot runs single actions given on the command line and reports whether
// anything was done.
func oneShot(dev proto.Control, drawer *slideshow.Drawer, logger *zap.Logger) bool {
	done := false

	switch *power {
	case "on":
		fatalOn(dev.Power(true))
		done = true
	case "off":
		fatalOn(dev.Power(false))
		done = true
	case "":
	default:
		log.Fatalf("bad --power value %q, want on/off", *power)
	}

	if *mode >= 0 {
		fatalOn(dev.SetDIYMode(uint8(*mode)))
		done = true
	}

	if *defMode {
		fatalOn(dev.SetDefaultMode())
		done = true
	}

	if *text != "" {
		fatalOn(dev.SetDIYMode(1))
		fatalOn(dev.ShowText(render.Request{
			Text:      *text,
			Antialias: *antialias,
			FontSize:  *fontSize,
			Font:      *fontName,
		}))
		done = true
	}

	if *imageURL != "" {
		item := slideshow.Item{Name: slideshow.Filename(*imageURL), URL: *imageURL}
		filled, err := drawer.Filled(item)
		fatalOn(err)
		fatalOn(dev.SetDIYMode(1))
		fatalOn(dev.ShowImage(filled, ipixel.DefaultBuffer))
		done = true
	}

	if done {
		logger.Info("done")
	}
	return done
}

func fatalOn(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
