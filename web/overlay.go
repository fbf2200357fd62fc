//go:build js
// +build js

package web

import (
	"strconv"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/pixel-sonify/sonify"
)

// StatsOverlay shows the sequencer's live state in a small floating canvas.
type StatsOverlay struct {
	Visible bool

	canvas *js.Object
	ctx    *js.Object

	Notes    int
	Last     sonify.Visit
	Pending  int
	Sounding int
	State    string
	Seed     uint32

	PanelWidth  int
	PanelHeight int
	LineHeight  int
}

// NewStatsOverlay creates the overlay canvas, hidden.
func NewStatsOverlay() *StatsOverlay {
	s := &StatsOverlay{
		PanelWidth:  240,
		PanelHeight: 210,
		LineHeight:  18,
		State:       "idle",
	}
	s.canvas = js.Global.Get("document").Call("createElement", "canvas")
	s.canvas.Set("width", s.PanelWidth)
	s.canvas.Set("height", s.PanelHeight)
	s.canvas.Get("style").Set("cssText", "position: fixed; left: 16px; top: 16px; pointer-events: none; display: none; z-index: 999;")
	s.ctx = s.canvas.Call("getContext", "2d")
	return s
}

// Mount adds the overlay canvas to parent.
func (s *StatsOverlay) Mount(parent *js.Object) {
	parent.Call("appendChild", s.canvas)
}

// Toggle toggles the overlay visibility.
func (s *StatsOverlay) Toggle() {
	s.Visible = !s.Visible
	if s.Visible {
		s.canvas.Get("style").Set("display", "block")
		s.Render()
	} else {
		s.canvas.Get("style").Set("display", "none")
	}
}

// Record stores a visited sample and redraws.
func (s *StatsOverlay) Record(v sonify.Visit, pending, sounding int) {
	s.Notes++
	s.Last = v
	s.Pending = pending
	s.Sounding = sounding
	s.State = "running"
	s.Render()
}

// Stopped marks playback as stopped and redraws.
func (s *StatsOverlay) Stopped() {
	s.State = "idle"
	s.Pending = 0
	s.Render()
}

// Render draws the overlay.
func (s *StatsOverlay) Render() {
	if !s.Visible {
		return
	}
	ctx := s.ctx
	ctx.Call("clearRect", 0, 0, s.PanelWidth, s.PanelHeight)

	ctx.Set("fillStyle", Theme.OverlayBackground)
	ctx.Call("fillRect", 0, 0, s.PanelWidth, s.PanelHeight)
	ctx.Set("strokeStyle", Theme.OverlayText)
	ctx.Set("lineWidth", 1)
	ctx.Call("strokeRect", 0, 0, s.PanelWidth, s.PanelHeight)

	ctx.Set("fillStyle", Theme.OverlayText)
	ctx.Set("font", "bold 13px monospace")
	ctx.Set("textAlign", "left")
	ctx.Call("fillText", "SCAN STATS [F10]", 10, 20)

	ctx.Set("font", Theme.OverlayFont)
	y := 44
	v := s.Last
	s.drawStatLine("State", s.State, "#ffffff", y)
	y += s.LineHeight
	s.drawStatLine("Notes", strconv.Itoa(s.Notes), "#ffff00", y)
	y += s.LineHeight
	s.drawStatLine("Cursor", strconv.Itoa(v.X)+","+strconv.Itoa(v.Y), "#ffffff", y)
	y += s.LineHeight
	s.drawStatLine("Color", rgba(v.Color), rgba(v.Color), y)
	y += s.LineHeight
	s.drawStatLine("Hue / Light", formatFixed(v.Hue, 1)+" / "+formatFixed(v.Lightness, 1), "#aaaaaa", y)
	y += s.LineHeight
	s.drawStatLine("Frequency", formatFixed(v.Note.Frequency, 2)+" Hz", "#00aaff", y)
	y += s.LineHeight
	s.drawStatLine("Duration", formatFixed(v.Note.Duration, 4)+" s", "#00aaff", y)
	y += s.LineHeight
	s.drawStatLine("Timers", strconv.Itoa(s.Pending), "#ff8800", y)
	y += s.LineHeight
	s.drawStatLine("Voices", strconv.Itoa(s.Sounding), "#ff4400", y)
}

func (s *StatsOverlay) drawStatLine(label, value, color string, y int) {
	s.ctx.Set("fillStyle", "#888888")
	s.ctx.Call("fillText", label+":", 10, y)
	s.ctx.Set("fillStyle", color)
	s.ctx.Set("textAlign", "right")
	s.ctx.Call("fillText", value, s.PanelWidth-10, y)
	s.ctx.Set("textAlign", "left")
}

func formatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
