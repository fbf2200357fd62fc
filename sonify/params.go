package sonify

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/simukka/pixel-sonify/audio"
)

const (
	MaxPlayableSize = 24  // Largest downsampled edge, bounds the number of notes
	MaxNoteDuration = 2.0 // Seconds

	MinBPM   = 40
	MaxBPM   = 240
	MinSpeed = 0.1
	MaxSpeed = 2.0
)

// Settings is the plain, serializable form of the playback parameters.
type Settings struct {
	Play      bool    `yaml:"play" json:"play"`
	Volume    float64 `yaml:"volume" json:"volume"`
	BPM       float64 `yaml:"bpm" json:"bpm"`
	Speed     float64 `yaml:"speed" json:"speed"`
	PixelStep int     `yaml:"pixelStep" json:"pixelStep"`
	Waveform  string  `yaml:"oscillatorType" json:"oscillatorType"`
	Scale     string  `yaml:"scale" json:"scale"`
}

var DefaultSettings = Settings{
	Play:      false,
	Volume:    1,
	BPM:       160,
	Speed:     0.5,
	PixelStep: 1,
	Waveform:  string(audio.Sawtooth),
	Scale:     DefaultScale,
}

// LoadSettings reads a YAML preset. Fields missing from the document keep
// their DefaultSettings value.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return s, fmt.Errorf("could not decode settings: %w", err)
	}
	return s, nil
}

// NoteDuration is the length of one note and one scan step in seconds.
func NoteDuration(bpm, speed float64) float64 {
	return math.Min((60/bpm)*speed, MaxNoteDuration)
}

// Parameters holds the live playback settings. Setters clamp their input,
// recompute the note duration when tempo or speed change, and notify
// listeners. A duration change only affects the next scheduled note.
type Parameters struct {
	play      bool
	volume    float64
	bpm       float64
	speed     float64
	pixelStep int
	waveform  audio.Waveform
	scale     string

	noteDuration float64
	listeners    []func()
}

// NewParameters validates s and returns live parameters.
func NewParameters(s Settings) (*Parameters, error) {
	p := &Parameters{}
	if err := p.Apply(s); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply replaces every field from s. The waveform is checked first so an
// invalid preset leaves p unchanged.
func (p *Parameters) Apply(s Settings) error {
	wave, err := audio.ParseWaveform(s.Waveform)
	if err != nil {
		return err
	}
	p.play = s.Play
	p.volume = clamp(s.Volume, 0, 1)
	p.bpm = clamp(s.BPM, MinBPM, MaxBPM)
	p.speed = clamp(s.Speed, MinSpeed, MaxSpeed)
	p.pixelStep = atLeastOne(s.PixelStep)
	p.waveform = wave
	p.scale = s.Scale
	p.recompute()
	p.notify()
	return nil
}

// Settings returns a snapshot of the current values.
func (p *Parameters) Settings() Settings {
	return Settings{
		Play:      p.play,
		Volume:    p.volume,
		BPM:       p.bpm,
		Speed:     p.speed,
		PixelStep: p.pixelStep,
		Waveform:  string(p.waveform),
		Scale:     p.scale,
	}
}

// OnChange registers fn to run after every change.
func (p *Parameters) OnChange(fn func()) {
	p.listeners = append(p.listeners, fn)
}

func (p *Parameters) notify() {
	for _, fn := range p.listeners {
		fn()
	}
}

func (p *Parameters) recompute() {
	p.noteDuration = NoteDuration(p.bpm, p.speed)
}

func (p *Parameters) Play() bool               { return p.play }
func (p *Parameters) Volume() float64          { return p.volume }
func (p *Parameters) BPM() float64             { return p.bpm }
func (p *Parameters) Speed() float64           { return p.speed }
func (p *Parameters) PixelStep() int           { return p.pixelStep }
func (p *Parameters) Waveform() audio.Waveform { return p.waveform }
func (p *Parameters) Scale() string            { return p.scale }
func (p *Parameters) NoteDuration() float64    { return p.noteDuration }

// SetPlay sets the play flag. Only the sequencer and controller write it.
func (p *Parameters) SetPlay(play bool) {
	if p.play == play {
		return
	}
	p.play = play
	p.notify()
}

// SetVolume sets the linear master volume, clamped to [0, 1].
func (p *Parameters) SetVolume(v float64) {
	p.volume = clamp(v, 0, 1)
	p.notify()
}

// SetBPM sets the tempo, clamped to [MinBPM, MaxBPM].
func (p *Parameters) SetBPM(bpm float64) {
	p.bpm = clamp(bpm, MinBPM, MaxBPM)
	p.recompute()
	p.notify()
}

// SetSpeed sets the speed multiplier, clamped to [MinSpeed, MaxSpeed].
func (p *Parameters) SetSpeed(speed float64) {
	p.speed = clamp(speed, MinSpeed, MaxSpeed)
	p.recompute()
	p.notify()
}

// SetPixelStep sets how many pixels the cursor skips per note; at least 1.
func (p *Parameters) SetPixelStep(step int) {
	p.pixelStep = atLeastOne(step)
	p.notify()
}

// SetWaveform selects the oscillator shape by name.
func (p *Parameters) SetWaveform(name string) error {
	wave, err := audio.ParseWaveform(name)
	if err != nil {
		return err
	}
	p.waveform = wave
	p.notify()
	return nil
}

// SetScale selects the musical scale. Unknown names are kept and map to the
// default scale.
func (p *Parameters) SetScale(name string) {
	p.scale = name
	p.notify()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
