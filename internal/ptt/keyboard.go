package ptt

import (
	"context"
	"unicode"

	hook "github.com/robotn/gohook"
)

// Keyboard holds the trigger while a configured key is pressed. It consumes
// the global hook event stream, so only one instance may exist per process.
type Keyboard struct {
	key     rune
	presses chan chan struct{}
	done    chan struct{}
}

func NewKeyboard(key string) *Keyboard {
	k := &Keyboard{
		key:     keyRune(key),
		presses: make(chan chan struct{}, 1),
		done:    make(chan struct{}),
	}

	go k.watch(hook.Start())

	return k
}

func keyRune(key string) rune {
	for _, r := range key {
		return unicode.ToLower(r)
	}
	return 'm'
}

func (k *Keyboard) watch(events chan hook.Event) {
	var released chan struct{}

	for {
		select {
		case <-k.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			if unicode.ToLower(ev.Keychar) != k.key {
				continue
			}

			switch ev.Kind {
			case hook.KeyDown, hook.KeyHold:
				if released != nil {
					continue // already held
				}
				released = make(chan struct{})
				select {
				case k.presses <- released:
				default:
					// nobody waiting; drop the press
					close(released)
					released = nil
				}
			case hook.KeyUp:
				if released != nil {
					close(released)
					released = nil
				}
			}
		}
	}
}

func (k *Keyboard) Engage(ctx context.Context) (<-chan struct{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case released := <-k.presses:
		return released, nil
	}
}

func (k *Keyboard) Close() error {
	close(k.done)
	hook.End()
	return nil
}
