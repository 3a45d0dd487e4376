package slideshow

import (
	"testing"
)

func TestParamsNextLoops(t *testing.T) {
	p := NewParams(32, 32)

	if _, ok := p.Next(); ok {
		t.Fatal("Next on empty rotation reported an item")
	}

	p.SetItems([]Item{{Name: "a"}, {Name: "b"}})

	var got []string
	for i := 0; i < 5; i++ {
		item, ok := p.Next()
		if !ok {
			t.Fatal("Next failed")
		}
		got = append(got, item.Name)
	}

	want := []string{"a", "b", "a", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rotation = %v, want %v", got, want)
		}
	}
}

func TestParamsPauseWakeup(t *testing.T) {
	p := NewParams(32, 32)

	p.Pause()
	if !p.Paused() {
		t.Fatal("not paused after Pause")
	}

	p.Wakeup()
	if p.Paused() {
		t.Fatal("paused after Wakeup")
	}

	select {
	case <-p.WakeupChan():
	default:
		t.Error("no wakeup signal delivered")
	}

	// A second wakeup with a full channel must not block.
	p.Wakeup()
	p.Wakeup()
}

func TestParamsSwapRatio(t *testing.T) {
	p := NewParams(64, 32)
	p.SwapRatio()
	if w, h := p.Size(); w != 32 || h != 64 {
		t.Errorf("size = %dx%d, want 32x64", w, h)
	}
}
