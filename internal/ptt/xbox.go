package ptt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/0xcafed00d/joystick"
)

// Standard xpad button layout.
var xboxButtons = map[string]int{
	"a":     0,
	"b":     1,
	"x":     2,
	"y":     3,
	"lb":    4,
	"rb":    5,
	"back":  6,
	"start": 7,
}

// Xbox holds the trigger while a controller button is pressed. The controller
// is polled; there is no event interface in the joystick API.
type Xbox struct {
	js     joystick.Joystick
	button int
	done   chan struct{}
}

func NewXbox(button string) (*Xbox, error) {
	idx, err := buttonIndex(button)
	if err != nil {
		return nil, err
	}

	js, err := joystick.Open(0)
	if err != nil {
		return nil, fmt.Errorf("open controller: %w", err)
	}

	return &Xbox{
		js:     js,
		button: idx,
		done:   make(chan struct{}),
	}, nil
}

func buttonIndex(button string) (int, error) {
	name := strings.ToLower(strings.TrimSpace(button))
	if name == "" {
		return xboxButtons["a"], nil
	}
	if idx, ok := xboxButtons[name]; ok {
		return idx, nil
	}
	if idx, err := strconv.Atoi(name); err == nil && idx >= 0 {
		return idx, nil
	}
	return 0, fmt.Errorf("unknown xbox button %q", button)
}

func (x *Xbox) pressed() (bool, error) {
	state, err := x.js.Read()
	if err != nil {
		return false, err
	}
	return state.Buttons&(1<<uint(x.button)) != 0, nil
}

func (x *Xbox) Engage(ctx context.Context) (<-chan struct{}, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	// wait for press
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-x.done:
			return nil, context.Canceled
		case <-ticker.C:
		}

		down, err := x.pressed()
		if err != nil {
			return nil, err
		}
		if down {
			break
		}
	}

	released := make(chan struct{})

	go func() {
		t := time.NewTicker(10 * time.Millisecond)
		defer t.Stop()
		defer close(released)

		for {
			select {
			case <-x.done:
				return
			case <-t.C:
			}

			down, err := x.pressed()
			if err != nil || !down {
				return
			}
		}
	}()

	return released, nil
}

func (x *Xbox) Close() error {
	close(x.done)
	x.js.Close()
	return nil
}
