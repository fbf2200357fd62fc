//go:build js
// +build js

package web

import (
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/pixel-sonify/clock"
)

// Timers schedules callbacks with setTimeout.
type Timers struct{}

type timeout struct {
	id   int
	done bool
}

func (t *timeout) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	js.Global.Call("clearTimeout", t.id)
	return true
}

// AfterFunc runs fn after d on the browser event loop.
func (Timers) AfterFunc(d time.Duration, fn func()) clock.Timer {
	t := &timeout{}
	t.id = js.Global.Call("setTimeout", func() {
		if t.done {
			return
		}
		t.done = true
		fn()
	}, float64(d)/float64(time.Millisecond)).Int()
	return t
}
