//go:build !js
// +build !js

package main

import (
	"context"
	"image/color"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/clock"
	"github.com/simukka/pixel-sonify/common"
	"github.com/simukka/pixel-sonify/debug"
	"github.com/simukka/pixel-sonify/sonify"
	"github.com/simukka/pixel-sonify/synth"
	"github.com/simukka/pixel-sonify/tui"
)

// loopAudio hands the player's completion callbacks back to the loop.
type loopAudio struct {
	player *synth.Player
	loop   *clock.Loop
}

func (a loopAudio) Running() bool { return a.player.Running() }

func (a loopAudio) Resume(done func(err error)) {
	a.player.Resume(func(err error) {
		a.loop.Post(func() { done(err) })
	})
}

// terminalPrompt has no autoplay policy to satisfy: it logs the message and
// confirms right away.
type terminalPrompt struct {
	loop *clock.Loop
}

func (p terminalPrompt) Prompt(message, button string, onConfirm func()) {
	debug.Log("prompt", "%s", strings.ReplaceAll(message, "<br>", " "))
	p.loop.Post(onConfirm)
}

type nopControls struct{}

func (nopControls) SetEnabled(bool) {}

// gridCanvas forwards to the TUI grid, or drops everything when headless.
type gridCanvas struct {
	grid *tui.Grid
}

func (c gridCanvas) FillSample(x, y, cols, rows int, col color.RGBA) {
	if c.grid != nil {
		c.grid.FillSample(x, y, cols, rows, col)
	}
}

func (c gridCanvas) DrawOriginal() {
	if c.grid != nil {
		c.grid.DrawOriginal()
	}
}

// live plays the image on the default audio device. Sequencer and
// controller only ever run on the loop goroutine.
func live(opts options, rnd *common.SeededRNG) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loop := clock.NewLoop()
	go loop.Run(ctx)

	mixer := synth.NewMixer(opts.sampleHz)
	player, err := synth.NewPlayer(mixer)
	if err != nil {
		return err
	}
	defer player.Close()

	settings := opts.settings
	settings.Play = false
	params, err := sonify.NewParameters(settings)
	if err != nil {
		return err
	}

	var grid *tui.Grid
	if !opts.noTUI {
		grid = tui.NewGrid()
	}

	log := newLogger(opts.debug)
	seq := sonify.NewSequencer(params, mixer, gridCanvas{grid}, loop, rnd, log)
	ctrl := sonify.NewController(seq, loopAudio{player, loop}, terminalPrompt{loop}, nopControls{}, fileLoader{}, loop, log)

	var last *sonify.Visit
	notes := 0
	seq.OnSample(func(v sonify.Visit) {
		last = &v
		notes++
		debug.LogEvery(8, "scan", "(%d,%d) %.1fHz", v.X, v.Y, v.Note.Frequency)
	})

	stopped := make(chan struct{}, 1)
	seq.OnStop(func() {
		select {
		case stopped <- struct{}{}:
		default:
		}
	})

	failed := make(chan error, 1)
	var loadErr error
	ctrl.OnLoadError(func(src string, err error) {
		loadErr = err
		select {
		case failed <- err:
		default:
		}
	})

	ctrl.OnLoad(func(src string, buf *sonify.SampleBuffer) {
		loadErr = nil
		if grid != nil {
			grid.SetImage(buf)
		}
		debug.Log("load", "%s as %dx%d samples", src, buf.Width(), buf.Height())
	})
	loop.Post(func() { ctrl.Load(opts.imagePath) })

	if opts.noTUI {
		err := waitHeadless(ctx, stopped, failed)
		loop.Call(ctrl.Stop)
		return err
	}

	actions := tui.Actions{
		Toggle: func() { loop.Call(ctrl.Toggle) },
		Reset:  func() { loop.Call(ctrl.Reset) },
		Tempo: func(delta float64) {
			loop.Call(func() { params.SetBPM(params.BPM() + delta) })
		},
		NextWave: func() {
			loop.Call(func() { params.SetWaveform(string(nextWaveform(params.Waveform()))) })
		},
		NextScale: func() {
			loop.Call(func() { params.SetScale(nextScale(params.Scale())) })
		},
		Status: func() tui.Status {
			var st tui.Status
			loop.Call(func() {
				st = tui.Status{
					Playing:  ctrl.Playing(),
					BPM:      params.BPM(),
					Speed:    params.Speed(),
					Waveform: string(params.Waveform()),
					Scale:    params.Scale(),
					Step:     params.PixelStep(),
					Last:     last,
					Notes:    notes,
				}
				if loadErr != nil {
					st.Err = loadErr.Error()
				}
			})
			return st
		},
		Quit: func() { loop.Call(ctrl.Stop) },
	}

	_, err = tea.NewProgram(tui.NewModel(grid, actions, "pixel-sonify"), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func nextWaveform(w audio.Waveform) audio.Waveform {
	for i, candidate := range audio.Waveforms {
		if candidate == w {
			return audio.Waveforms[(i+1)%len(audio.Waveforms)]
		}
	}
	return audio.Waveforms[0]
}

func nextScale(name string) string {
	names := sonify.ScaleNames()
	for i, candidate := range names {
		if candidate == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// waitHeadless blocks until the scan ends, the image fails to load or ctx
// is cancelled.
func waitHeadless(ctx context.Context, stopped <-chan struct{}, failed <-chan error) error {
	select {
	case <-stopped:
		return nil
	case err := <-failed:
		return err
	case <-ctx.Done():
		return nil
	}
}
