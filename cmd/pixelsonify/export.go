//go:build !js
// +build !js

package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/simukka/pixel-sonify/clock"
	"github.com/simukka/pixel-sonify/common"
	"github.com/simukka/pixel-sonify/sonify"
	"github.com/simukka/pixel-sonify/synth"
)

// nopCanvas discards scan progress when rendering offline.
type nopCanvas struct{}

func (nopCanvas) FillSample(x, y, cols, rows int, c color.RGBA) {}
func (nopCanvas) DrawOriginal()                                 {}

// rendition is one offline pass over an image.
type rendition struct {
	Audio []float32
	Midi  *synth.MidiRecorder
	Notes int
	Rate  int
}

// render plays buf through a virtual clock into a mixer and a MIDI
// recorder, returning once the scan has finished and the last note has
// died out.
func render(buf *sonify.SampleBuffer, settings sonify.Settings, opts options, rnd common.RandomSource) (*rendition, error) {
	settings.Play = false
	params, err := sonify.NewParameters(settings)
	if err != nil {
		return nil, err
	}

	vc := clock.NewVirtualClock()
	mixer := synth.NewMixer(opts.sampleHz)
	rec := synth.NewMidiRecorder(vc.Now, params.BPM())

	seq := sonify.NewSequencer(params, synth.Tee{mixer, rec}, nopCanvas{}, vc, rnd, newLogger(opts.debug))
	r := &rendition{Midi: rec, Rate: opts.sampleHz}
	finished := false
	seq.OnSample(func(v sonify.Visit) { r.Notes++ })
	seq.OnStop(func() { finished = true })

	seq.SetImage(buf)
	if err := seq.Start(); err != nil {
		return nil, err
	}
	r.Audio = synth.Bounce(vc, mixer, func() bool { return finished }, opts.limit)
	if !finished {
		seq.Stop()
		logger.Printf("Rendition cut at %s", opts.limit)
	}
	return r, nil
}

// export renders the image and writes the requested files.
func export(opts options, rnd common.RandomSource) error {
	buf, err := decodeImage(opts.imagePath)
	if err != nil {
		return err
	}
	r, err := render(buf, opts.settings, opts, rnd)
	if err != nil {
		return err
	}
	logger.Printf("Rendered %d notes from a %dx%d sample grid", r.Notes, buf.Width(), buf.Height())

	if opts.wavPath != "" {
		peak := synth.Normalize(r.Audio, opts.headroom)
		if err := writeFile(opts.wavPath, func(f *os.File) error {
			return synth.WriteWAV(f, r.Audio, r.Rate, synth.Channels)
		}); err != nil {
			return err
		}
		logger.Printf("Wrote %s (%.2fs, peak %.2f)", opts.wavPath, float64(len(r.Audio)/synth.Channels)/float64(r.Rate), peak)
	}

	if opts.midiPath != "" {
		if err := writeFile(opts.midiPath, func(f *os.File) error {
			_, err := r.Midi.WriteTo(f)
			return err
		}); err != nil {
			return err
		}
		logger.Printf("Wrote %s (%d events)", opts.midiPath, r.Midi.Len())
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return f.Close()
}
