//go:build js
// +build js

package web

import (
	"image/color"
	"strconv"

	"github.com/gopherjs/gopherjs/js"
)

// Canvas draws scan progress over the original image on a 2D canvas.
type Canvas struct {
	el       *js.Object
	ctx      *js.Object
	original *js.Object
}

// NewCanvas wraps a <canvas> element.
func NewCanvas(el *js.Object) *Canvas {
	return &Canvas{el: el, ctx: el.Call("getContext", "2d")}
}

// SetOriginal sizes the canvas to img and draws it.
func (c *Canvas) SetOriginal(img *js.Object) {
	if img == nil || img == js.Undefined {
		return
	}
	c.original = img
	w, h := img.Get("width").Int(), img.Get("height").Int()

	style := c.el.Get("style")
	style.Set("maxWidth", strconv.FormatFloat(float64(w)*Theme.CanvasScale, 'f', 0, 64)+"px")
	style.Set("maxHeight", strconv.FormatFloat(float64(h)*Theme.CanvasScale, 'f', 0, 64)+"px")

	c.ctx.Call("clearRect", 0, 0, c.el.Get("width").Int(), c.el.Get("height").Int())
	c.el.Set("width", w)
	c.el.Set("height", h)
	c.DrawOriginal()
}

// DrawOriginal repaints the full-resolution image, erasing scan progress.
func (c *Canvas) DrawOriginal() {
	if c.original == nil {
		return
	}
	c.ctx.Call("drawImage", c.original, 0, 0, c.el.Get("width").Int(), c.el.Get("height").Int())
}

// FillSample paints one grid cell in the sample's color with a light outline.
func (c *Canvas) FillSample(x, y, cols, rows int, col color.RGBA) {
	cw := c.el.Get("width").Float() / float64(cols)
	ch := c.el.Get("height").Float() / float64(rows)
	px, py := float64(x)*cw, float64(y)*ch

	c.ctx.Set("fillStyle", rgba(col))
	c.ctx.Call("fillRect", px, py, cw, ch)

	c.ctx.Set("strokeStyle", Theme.SampleStroke)
	c.ctx.Set("lineWidth", Theme.SampleStrokeWidth)
	c.ctx.Call("strokeRect", px, py, cw, ch)
}

func rgba(c color.RGBA) string {
	return "rgba(" + strconv.Itoa(int(c.R)) + ", " + strconv.Itoa(int(c.G)) + ", " + strconv.Itoa(int(c.B)) + ", 1)"
}

// RenderToCanvas creates an offscreen canvas and renders to it.
func RenderToCanvas(width, height int, renderFn func(canvas, ctx *js.Object)) *js.Object {
	canvas := js.Global.Get("document").Call("createElement", "canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	ctx := canvas.Call("getContext", "2d")
	renderFn(canvas, ctx)
	return canvas
}
