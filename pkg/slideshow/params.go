package slideshow

import (
	"sync"
	"time"
)

// Item is one entry of the rotation: either a file on the source dir or a
// remote URL.
type Item struct {
	Name string
	Path string
	URL  string
}

func NewParams(width, height int) *Params {
	return &Params{
		ErrorWait:  3 * time.Second,
		ChangeWait: 30 * time.Second,
		wakeup:     make(chan struct{}, 1),
		reset:      make(chan time.Duration, 1),
		width:      width,
		height:     height,
	}
}

type Params struct {
	l sync.RWMutex

	ErrorWait  time.Duration
	ChangeWait time.Duration

	wakeup chan struct{}
	reset  chan time.Duration
	paused bool
	width  int
	height int
	items  []Item
	cursor int
}

func (p *Params) Size() (w, h int) {
	return p.width, p.height
}

func (p *Params) SwapRatio() {
	p.width, p.height = p.height, p.width
}

func (p *Params) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) ResetChan() <-chan time.Duration {
	return p.reset
}

func (p *Params) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

func (p *Params) Wakeup() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}

func (p *Params) Reset(dur time.Duration) {
	select {
	case p.reset <- dur:
	default:
	}
}

func (p *Params) SetItems(items []Item) {
	p.l.Lock()
	defer p.l.Unlock()
	p.items = items
	p.cursor = 0
}

// Next returns the next item of the rotation, looping back to the start.
func (p *Params) Next() (Item, bool) {
	p.l.Lock()
	defer p.l.Unlock()

	if len(p.items) == 0 {
		return Item{}, false
	}

	item := p.items[p.cursor%len(p.items)]
	p.cursor++
	return item, true
}
