//go:build !js
// +build !js

// Command pixelsonify plays an image as music in the terminal, or renders
// the rendition to WAV and MIDI files.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"

	"github.com/simukka/pixel-sonify/common"
	"github.com/simukka/pixel-sonify/debug"
	"github.com/simukka/pixel-sonify/sonify"
)

var logger *log.Logger

type options struct {
	preset    string
	bpm       float64
	speed     float64
	volume    float64
	waveform  string
	scale     string
	step      int
	seed      uint32
	wavPath   string
	midiPath  string
	limit     time.Duration
	debug     bool
	noTUI     bool
	sampleHz  int
	headroom  float32
	settings  sonify.Settings
	imagePath string
}

func main() {
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime)

	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatalf("failed to get current working directory: %v", err)
	}

	var opts options
	pflag.StringVarP(&opts.preset, "preset", "p", "", "YAML preset with playback settings")
	pflag.Float64VarP(&opts.bpm, "bpm", "b", sonify.DefaultSettings.BPM, "tempo in beats per minute")
	pflag.Float64VarP(&opts.speed, "speed", "s", sonify.DefaultSettings.Speed, "note length in beats")
	pflag.Float64VarP(&opts.volume, "volume", "v", sonify.DefaultSettings.Volume, "master volume (0-1)")
	pflag.StringVarP(&opts.waveform, "wave", "w", sonify.DefaultSettings.Waveform, "oscillator: sine, square, sawtooth or triangle")
	pflag.StringVar(&opts.scale, "scale", sonify.DefaultSettings.Scale, "musical scale")
	pflag.IntVar(&opts.step, "step", sonify.DefaultSettings.PixelStep, "pixels advanced per note")
	pflag.Uint32Var(&opts.seed, "seed", 0, "variation seed (0 picks one from the clock)")
	pflag.StringVar(&opts.wavPath, "wav", "", "render to this WAV file instead of playing")
	pflag.StringVar(&opts.midiPath, "midi", "", "render to this MIDI file instead of playing")
	pflag.DurationVar(&opts.limit, "limit", 10*time.Minute, "longest offline rendition")
	pflag.IntVar(&opts.sampleHz, "rate", 44100, "sample rate")
	pflag.BoolVar(&opts.debug, "debug", false, "write a debug log to "+debug.Path())
	pflag.BoolVar(&opts.noTUI, "no-tui", false, "play once without the terminal interface")
	pflag.Parse()
	opts.headroom = 0.89

	if opts.debug {
		if err := debug.Enable(); err != nil {
			logger.Fatalf("failed to enable debug log: %v", err)
		}
		defer debug.Disable()
	}

	opts.settings, err = resolveSettings(opts, pflag.CommandLine)
	if err != nil {
		logger.Fatalf("invalid settings: %v", err)
	}

	opts.imagePath, err = choosePath(cwd, pflag.Args())
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Printf("User cancelled the file dialog")
			os.Exit(1)
		}
		logger.Fatalf("failed to determine image path: %v", err)
	}

	if opts.seed == 0 {
		opts.seed = uint32(time.Now().UnixNano())
	}
	rng := common.NewSeededRNG(common.ImageSeed(opts.seed, opts.imagePath))
	logger.Printf("Seed %d", opts.seed)

	if opts.debug {
		debug.Log("main", "options:\n%s", spew.Sdump(opts))
	}

	if opts.wavPath != "" || opts.midiPath != "" {
		if err := export(opts, rng); err != nil {
			logger.Fatalf("export failed: %v", err)
		}
		return
	}

	if err := live(opts, rng); err != nil {
		logger.Fatalf("playback failed: %v", err)
	}
}

// resolveSettings starts from the preset, or the defaults, and applies
// every flag given on the command line on top.
func resolveSettings(opts options, flags *pflag.FlagSet) (sonify.Settings, error) {
	s := sonify.DefaultSettings
	if opts.preset != "" {
		f, err := os.Open(opts.preset)
		if err != nil {
			return s, err
		}
		defer f.Close()
		if s, err = sonify.LoadSettings(f); err != nil {
			return s, err
		}
	}

	if flags.Changed("bpm") {
		s.BPM = opts.bpm
	}
	if flags.Changed("speed") {
		s.Speed = opts.speed
	}
	if flags.Changed("volume") {
		s.Volume = opts.volume
	}
	if flags.Changed("wave") {
		s.Waveform = opts.waveform
	}
	if flags.Changed("scale") {
		s.Scale = opts.scale
	}
	if flags.Changed("step") {
		s.PixelStep = opts.step
	}
	if !sonify.IsScale(s.Scale) {
		return s, fmt.Errorf("unknown scale %q", s.Scale)
	}
	return s, nil
}

// cliLogger sends warnings and errors to the command's log and everything,
// debug lines included, to the debug file when it is enabled.
type cliLogger struct {
	out   *log.Logger
	debug sonify.Logger
}

func newLogger(debugEnabled bool) cliLogger {
	l := cliLogger{out: logger, debug: sonify.NopLogger}
	if debugEnabled {
		l.debug = debug.Logger{Category: "sonify"}
	}
	return l
}

func (l cliLogger) Debug(args ...interface{}) { l.debug.Debug(args...) }

func (l cliLogger) Warn(args ...interface{}) {
	l.out.Println(append([]interface{}{"warning:"}, args...)...)
	l.debug.Warn(args...)
}

func (l cliLogger) Error(args ...interface{}) {
	l.out.Println(append([]interface{}{"error:"}, args...)...)
	l.debug.Error(args...)
}
