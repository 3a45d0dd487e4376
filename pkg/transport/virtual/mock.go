// Package virtual provides a capturing transport for tests and dry runs.
package virtual

import (
	"sync"

	"go.uber.org/zap"

	"ipixel/pkg/transport"
)

func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{l: logger}
}

type Mocker struct {
	mu sync.Mutex
	l  *zap.Logger
	fn func(p []byte)

	frames [][]byte
	closed bool
}

func (m *Mocker) Write(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(p))
	copy(buf, p)
	m.frames = append(m.frames, buf)

	m.l.With(zap.Int("size", len(p))).Debug("write")
	return nil
}

func (m *Mocker) Notify(fn func(p []byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return nil
}

func (m *Mocker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Frames returns every buffer written so far.
func (m *Mocker) Frames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Inject simulates a device notification.
func (m *Mocker) Inject(p []byte) {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()

	if fn != nil {
		fn(p)
	}
}

// Closed reports whether Close was called.
func (m *Mocker) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ transport.Transport = (*Mocker)(nil)
