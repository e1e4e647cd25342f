package app

import (
	"sync"

	"github.com/ayusman/mudra/internal/gesture"
)

const feedBuffer = 64

// feed fans forwarded commands out to subscribers without blocking the frame
// loop.
type feed struct {
	mu   sync.Mutex
	subs map[int]chan gesture.Command
	next int
}

func newFeed() *feed {
	return &feed{subs: make(map[int]chan gesture.Command)}
}

func (f *feed) subscribe() (<-chan gesture.Command, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan gesture.Command, feedBuffer)
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

func (f *feed) publish(cmd gesture.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- cmd:
		default:
		}
	}
}
