package virtual

import (
	"bytes"
	"testing"

	"go.uber.org/zap"
)

func TestMockerCaptures(t *testing.T) {
	m := Mock(zap.NewNop())

	if err := m.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := m.Write([]byte{4}); err != nil {
		t.Fatal(err)
	}

	frames := m.Frames()
	if len(frames) != 2 {
		t.Fatalf("captured %d frames, want 2", len(frames))
	}
	if !bytes.Equal(frames[0], []byte{1, 2, 3}) || !bytes.Equal(frames[1], []byte{4}) {
		t.Errorf("frames = %v", frames)
	}
}

func TestMockerWriteCopies(t *testing.T) {
	m := Mock(zap.NewNop())

	buf := []byte{1, 2, 3}
	if err := m.Write(buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 9

	if m.Frames()[0][0] != 1 {
		t.Error("captured frame aliases the caller's buffer")
	}
}

func TestMockerNotify(t *testing.T) {
	m := Mock(zap.NewNop())

	var got []byte
	if err := m.Notify(func(p []byte) { got = p }); err != nil {
		t.Fatal(err)
	}

	m.Inject([]byte{0xAA})
	if !bytes.Equal(got, []byte{0xAA}) {
		t.Errorf("notify got %x", got)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if !m.Closed() {
		t.Error("not closed")
	}
}
