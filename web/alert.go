//go:build js
// +build js

package web

import (
	"github.com/gopherjs/gopherjs/js"
)

// Alert shows a modal message box with one button.
type Alert struct {
	ClassName string
}

// Prompt appends the alert to the page and focuses its button. onConfirm
// runs once, when the button is clicked.
func (a Alert) Prompt(message, button string, onConfirm func()) {
	doc := js.Global.Get("document")

	box := doc.Call("createElement", "div")
	box.Set("className", "alert-box "+a.ClassName)

	content := doc.Call("createElement", "div")
	content.Set("className", "alert-content")

	text := doc.Call("createElement", "p")
	text.Set("innerHTML", message)

	btn := doc.Call("createElement", "button")
	btn.Set("className", "button")
	btn.Set("innerHTML", `<span class="text">`+button+`</span>`)

	content.Call("appendChild", text)
	content.Call("appendChild", btn)
	box.Call("appendChild", content)

	box.Call("addEventListener", "animationend", func() {
		box.Get("style").Set("transform", "translate(-50%, -50%)")
	})

	closed := false
	btn.Call("addEventListener", "click", func() {
		if closed {
			return
		}
		closed = true
		box.Get("classList").Call("add", "out")
		js.Global.Call("setTimeout", func() {
			doc.Get("body").Call("removeChild", box)
		}, 200)
		if onConfirm != nil {
			onConfirm()
		}
	})

	doc.Get("body").Call("appendChild", box)
	btn.Call("focus")
}
