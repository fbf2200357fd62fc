//go:build js
// +build js

package web

import (
	"github.com/gopherjs/gopherjs/js"
)

const (
	KeyToggle  = 32  // Space
	KeyReset   = 82  // R
	KeyPanel   = 72  // H
	KeyOverlay = 121 // F10
)

// KeyMap maps alternative keys to canonical control codes.
var KeyMap = map[int]int{
	13: KeyToggle, // Enter => Space
	80: KeyToggle, // P => Space
	27: KeyReset,  // Esc => R
}

// TranslateKeyCode converts alternative key codes to canonical control codes.
func TranslateKeyCode(keyCode int) int {
	if mapped, ok := KeyMap[keyCode]; ok {
		return mapped
	}
	return keyCode
}

// KeyActions are the callbacks bound to keyboard shortcuts.
type KeyActions struct {
	Toggle  func()
	Reset   func()
	Panel   func()
	Overlay func()
}

// SetupInputHandlers binds keyboard shortcuts. Keys typed into form fields
// are left alone.
func SetupInputHandlers(actions KeyActions) {
	js.Global.Get("document").Call("addEventListener", "keydown",
		func(event *js.Object) {
			tag := event.Get("target").Get("tagName").String()
			if tag == "INPUT" || tag == "SELECT" || tag == "TEXTAREA" || tag == "BUTTON" {
				return
			}

			var action func()
			switch TranslateKeyCode(event.Get("keyCode").Int()) {
			case KeyToggle:
				action = actions.Toggle
			case KeyReset:
				action = actions.Reset
			case KeyPanel:
				action = actions.Panel
			case KeyOverlay:
				action = actions.Overlay
			}
			if action == nil {
				return
			}
			event.Call("preventDefault")
			action()
		})
}
