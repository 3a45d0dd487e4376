// Package ble connects to iPIXEL panels over Bluetooth Low Energy.
package ble

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"ipixel/pkg/transport"
)

// DefaultNamePrefix matches the local name the panels advertise.
const DefaultNamePrefix = "iPIXEL-"

// The panels expose a single vendor service with one write and one notify
// characteristic.
var (
	serviceUUID = bluetooth.New16BitUUID(0xFFF0)
	notifyUUID  = bluetooth.New16BitUUID(0xFFF1)
	writeUUID   = bluetooth.New16BitUUID(0xFFF2)
)

type Options struct {
	Address     string        // exact device address, checked before the name prefix
	NamePrefix  string        // defaults to DefaultNamePrefix
	ScanTimeout time.Duration // defaults to 30s
	Chunk       int           // write chunk size, defaults to 512
}

// Dial scans for a matching panel, connects and resolves the write/notify
// characteristics. The returned client implements transport.Transport.
func Dial(opts *Options, logger *zap.Logger) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	}
	prefix := opts.NamePrefix
	if prefix == "" {
		prefix = DefaultNamePrefix
	}
	timeout := opts.ScanTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	chunk := opts.Chunk
	if chunk == 0 {
		chunk = 512
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, errors.Wrap(err, "enable BLE stack")
	}

	found := make(chan bluetooth.ScanResult, 1)
	go func() {
		time.Sleep(timeout)
		_ = adapter.StopScan()
	}()

	err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if opts.Address != "" {
			if !strings.EqualFold(result.Address.String(), opts.Address) {
				return
			}
		} else if !strings.HasPrefix(result.LocalName(), prefix) {
			return
		}

		select {
		case found <- result:
			_ = adapter.StopScan()
		default:
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan")
	}

	var result bluetooth.ScanResult
	select {
	case result = <-found:
	default:
		return nil, errors.New("panel not found")
	}

	logger.With(
		zap.String("name", result.LocalName()),
		zap.String("address", result.Address.String()),
		zap.Int16("rssi", result.RSSI),
	).Info("panel found")

	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		_ = device.Disconnect()
		return nil, errors.Wrap(err, "discover service")
	}
	if len(services) == 0 {
		_ = device.Disconnect()
		return nil, errors.New("panel service not found")
	}
	service := services[0]

	chars, err := service.DiscoverCharacteristics([]bluetooth.UUID{notifyUUID, writeUUID})
	if err != nil {
		_ = device.Disconnect()
		return nil, errors.Wrap(err, "discover characteristics")
	}
	if len(chars) < 2 {
		_ = device.Disconnect()
		return nil, errors.New("write/notify characteristics not found")
	}

	return &Client{
		logger: logger,
		device: device,
		notify: chars[0],
		write:  chars[1],
		chunk:  chunk,
	}, nil
}

type Client struct {
	logger *zap.Logger
	device *bluetooth.Device
	notify bluetooth.DeviceCharacteristic
	write  bluetooth.DeviceCharacteristic
	chunk  int
}

// Write sends a command buffer, chopped into chunks the ATT payload can
// carry. The device reassembles on the length header.
func (c *Client) Write(p []byte) error {
	for len(p) > 0 {
		part := p
		if len(part) > c.chunk {
			part = part[:c.chunk]
		}
		p = p[len(part):]

		if _, err := c.write.WriteWithoutResponse(part); err != nil {
			return errors.Wrap(err, "write characteristic")
		}
	}
	return nil
}

func (c *Client) Notify(fn func(p []byte)) error {
	return c.notify.EnableNotifications(fn)
}

func (c *Client) Close() error {
	return c.device.Disconnect()
}

var _ transport.Transport = (*Client)(nil)
