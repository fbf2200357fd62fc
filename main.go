//go:build js
// +build js

package main

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/common"
	"github.com/simukka/pixel-sonify/sonify"
	"github.com/simukka/pixel-sonify/web"
)

const defaultImage = "images/demo.jpg"

func main() {
	doc := js.Global.Get("document")
	el := doc.Call("getElementById", "c")
	if el == nil || el == js.Undefined {
		panic("canvas element not found")
	}

	params, err := sonify.NewParameters(sonify.DefaultSettings)
	if err != nil {
		panic(err)
	}

	canvas := web.NewCanvas(el)
	engine := audio.NewWebAudioEngine()
	loader := web.NewLoader()
	rng := common.NewSeededRNG(pageSeed())
	logger := web.ConsoleLogger{}

	seq := sonify.NewSequencer(params, engine, canvas, web.Timers{}, rng, logger)
	panel := web.NewPanel(params)
	ctrl := sonify.NewController(seq, engine, web.Alert{ClassName: "audio-blocked"}, panel, loader, web.Timers{}, logger)

	overlay := web.NewStatsOverlay()
	overlay.Seed = rng.Seed()
	seq.OnSample(func(v sonify.Visit) {
		overlay.Record(v, seq.Pending(), engine.Sounding())
	})
	seq.OnStop(overlay.Stopped)

	ctrl.OnLoad(func(src string, buf *sonify.SampleBuffer) {
		rng.SetSeed(common.ImageSeed(overlay.Seed, src))
		canvas.SetOriginal(loader.Image(src))
		web.Debugf("sampling %dx%d from a %d byte source", buf.Width(), buf.Height(), len(src))
	})

	body := doc.Get("body")
	panel.Mount(body, ctrl)
	overlay.Mount(body)

	web.SetupInputHandlers(web.KeyActions{
		Toggle:  ctrl.Toggle,
		Reset:   ctrl.Reset,
		Panel:   panel.Toggle,
		Overlay: overlay.Toggle,
	})

	// Expose playback controls to JavaScript
	js.Global.Set("PixelSonify", map[string]interface{}{
		"load":  ctrl.Load,
		"play":  ctrl.Start,
		"stop":  ctrl.Stop,
		"reset": ctrl.Reset,
		"isPlaying": func() bool {
			return ctrl.Playing()
		},
	})

	js.Global.Call("addEventListener", "beforeunload", func() {
		ctrl.Stop()
	})

	ctrl.Load(initialImage(el))
}

// initialImage picks ?img=, then the canvas data-src, then the demo image.
func initialImage(el *js.Object) string {
	search := js.Global.Get("location").Get("search").String()
	if query, err := url.ParseQuery(strings.TrimPrefix(search, "?")); err == nil && query.Get("img") != "" {
		return query.Get("img")
	}
	if src := el.Call("getAttribute", "data-src"); src != nil && src != js.Undefined && src.String() != "" {
		return src.String()
	}
	return defaultImage
}

// pageSeed reads ?seed=N from the page URL so a rendition can be replayed,
// falling back to the clock.
func pageSeed() uint32 {
	search := js.Global.Get("location").Get("search").String()
	query, err := url.ParseQuery(strings.TrimPrefix(search, "?"))
	if err == nil {
		if n, err := strconv.ParseUint(query.Get("seed"), 10, 32); err == nil {
			return uint32(n)
		}
	}
	return uint32(time.Now().UnixNano())
}
