// Package serialport drives a panel controller hanging off a UART bridge,
// for bench rigs where Bluetooth is not available.
package serialport

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"ipixel/pkg/transport"
)

type Options struct {
	BaudRate    int
	ReadTimeout time.Duration
}

func New(name string) *Port {
	return &Port{name: name}
}

type Port struct {
	name string
	port serial.Port
	done chan struct{}
}

func (p *Port) Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Open matches the configured name against the available ports and opens
// the first hit.
func (p *Port) Open(opts *Options) error {
	ports, err := p.Ports()
	if err != nil {
		return err
	}

	var matched string
	for _, name := range ports {
		if strings.Contains(name, p.name) {
			matched = name
			break
		}
	}
	if matched == "" {
		return errors.New("serial port not found")
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return err
	}

	if opts.ReadTimeout > 0 {
		if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
			return err
		}
	}

	p.port = port
	p.done = make(chan struct{})
	return nil
}

func (p *Port) Write(b []byte) error {
	_, err := p.port.Write(b)
	return err
}

// Notify pumps everything the controller writes back into fn until Close.
func (p *Port) Notify(fn func(b []byte)) error {
	if p.port == nil {
		return errors.New("port not open")
	}

	go func() {
		buf := make([]byte, 64)
		for {
			select {
			case <-p.done:
				return
			default:
			}

			n, err := p.port.Read(buf)
			if err != nil {
				return
			}
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				fn(chunk)
			}
		}
	}()

	return nil
}

func (p *Port) Close() error {
	if p.done != nil {
		close(p.done)
	}
	return p.port.Close()
}

var _ transport.Transport = (*Port)(nil)
