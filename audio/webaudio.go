//go:build js
// +build js

package audio

import (
	"errors"
	"time"

	"github.com/gopherjs/gopherjs/js"
)

// WebAudioEngine plays notes through the Web Audio API.
// The AudioContext is created lazily once and reused across images and sessions.
type WebAudioEngine struct {
	ctx        *js.Object
	masterGain *js.Object
	ready      bool

	// Sounding nodes per note, removed when the main oscillator ends
	voices map[int][]*js.Object
	nextID int
}

// NewWebAudioEngine creates an engine; no AudioContext exists until Init.
func NewWebAudioEngine() *WebAudioEngine {
	return &WebAudioEngine{
		voices: make(map[int][]*js.Object),
	}
}

// Init creates the AudioContext and the shared master gain if needed.
// Returns false when the browser has no Web Audio support.
func (e *WebAudioEngine) Init() bool {
	if e.ctx != nil {
		return true
	}

	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return false
	}

	e.ctx = audioCtx.New()
	e.masterGain = e.ctx.Call("createGain")
	e.masterGain.Call("connect", e.ctx.Get("destination"))
	e.masterGain.Get("gain").Set("value", 1)
	e.ready = true
	return true
}

// Running reports whether the audio clock is advancing.
func (e *WebAudioEngine) Running() bool {
	if !e.Init() {
		return false
	}
	return e.ctx.Get("state").String() == "running"
}

// Resume asks the browser to resume a suspended context.
// done runs once the promise settles; it receives an error if resume was refused.
func (e *WebAudioEngine) Resume(done func(err error)) {
	if !e.Init() {
		if done != nil {
			done(errors.New("web audio unavailable"))
		}
		return
	}
	promise := e.ctx.Call("resume")
	promise.Call("then", func() {
		if done != nil {
			done(nil)
		}
	}, func(reason *js.Object) {
		if done != nil {
			done(errors.New("AudioContext.resume() blocked: " + reason.String()))
		}
	})
}

// Play builds the note's subgraph at the current audio time and returns the
// delay until it is audible. Nothing is built while the context is suspended.
func (e *WebAudioEngine) Play(n NoteEvent) time.Duration {
	if !e.ready || e.ctx.Get("state").String() != "running" {
		return 0
	}

	now := e.ctx.Get("currentTime").Float()
	stopAt := now + n.StopTime()

	// Shared master volume
	e.masterGain.Get("gain").Call("setValueAtTime", n.MasterGain, now)

	osc := e.ctx.Call("createOscillator")
	osc.Set("type", string(n.Waveform))
	osc.Get("frequency").Call("setValueAtTime", n.Frequency, now)

	gain := e.ctx.Call("createGain")
	osc.Call("connect", gain)
	gain.Call("connect", e.masterGain)

	// Vibrato on the oscillator frequency
	vibrato := e.ctx.Call("createOscillator")
	vibrato.Get("frequency").Call("setValueAtTime", n.VibratoRate, now)
	vibratoGain := e.ctx.Call("createGain")
	vibratoGain.Get("gain").Call("setValueAtTime", n.VibratoDepth, now)
	vibrato.Call("connect", vibratoGain)
	vibratoGain.Call("connect", osc.Get("frequency"))

	// Tremolo on the note gain
	tremolo := e.ctx.Call("createOscillator")
	tremolo.Get("frequency").Call("setValueAtTime", n.TremoloRate, now)
	tremoloGain := e.ctx.Call("createGain")
	tremoloGain.Get("gain").Call("setValueAtTime", n.TremoloDepth, now)
	tremolo.Call("connect", tremoloGain)
	tremoloGain.Call("connect", gain.Get("gain"))

	lowpass := e.ctx.Call("createBiquadFilter")
	lowpass.Set("type", "lowpass")
	lowpass.Get("frequency").Call("setValueAtTime", n.LowpassCutoff, now)
	osc.Call("connect", lowpass)
	lowpass.Call("connect", gain)

	send := e.ctx.Call("createGain")
	send.Get("gain").Call("setValueAtTime", n.ReverbSend, now)
	gain.Call("connect", send)
	send.Call("connect", e.masterGain)

	shelf := e.ctx.Call("createBiquadFilter")
	shelf.Set("type", "lowshelf")
	shelf.Get("frequency").Call("setValueAtTime", n.ShelfFrequency, now)
	shelf.Get("gain").Call("setValueAtTime", n.ShelfGain, now)
	gain.Call("connect", shelf)
	shelf.Call("connect", e.masterGain)

	attackEnd, decayStart := n.EnvelopeTimes()
	g := gain.Get("gain")
	g.Call("setValueAtTime", 0, now)
	g.Call("linearRampToValueAtTime", n.Volume, now+attackEnd)
	g.Call("linearRampToValueAtTime", n.Volume*n.Sustain, now+decayStart)
	g.Call("exponentialRampToValueAtTime", n.Floor, now+n.Duration)

	id := e.nextID
	e.nextID++
	nodes := []*js.Object{osc, vibrato, tremolo}
	e.voices[id] = nodes
	osc.Set("onended", func() {
		delete(e.voices, id)
	})

	for _, node := range nodes {
		node.Call("start", now)
		node.Call("stop", stopAt)
	}

	return 0
}

// StopAll hard-stops every sounding note, truncating its decay.
func (e *WebAudioEngine) StopAll() {
	if !e.ready {
		return
	}
	for id, nodes := range e.voices {
		for _, node := range nodes {
			node.Call("stop")
		}
		delete(e.voices, id)
	}
}

// Sounding returns how many notes still have live nodes.
func (e *WebAudioEngine) Sounding() int {
	return len(e.voices)
}
