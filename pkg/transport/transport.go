// Package transport abstracts the byte pipe between the host and the panel
// controller. A transport only moves framed command buffers and surfaces
// whatever the device notifies back; retry and backoff are the caller's
// business.
package transport

type Transport interface {
	Write(p []byte) error
	Notify(fn func(p []byte)) error
	Close() error
}
