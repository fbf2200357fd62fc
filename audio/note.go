package audio

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/simukka/pixel-sonify/common"
)

// ErrUnknownWaveform is returned when a waveform name is not one of Waveforms.
var ErrUnknownWaveform = errors.New("unknown waveform")

// Waveform is an oscillator shape, named as the Web Audio OscillatorNode type.
type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
	Triangle Waveform = "triangle"
)

// Waveforms lists the selectable oscillator shapes in panel order.
var Waveforms = []Waveform{Sine, Square, Sawtooth, Triangle}

// ParseWaveform resolves a waveform name case-insensitively.
func ParseWaveform(name string) (Waveform, error) {
	for _, w := range Waveforms {
		if strings.EqualFold(name, string(w)) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
}

// NoteEvent describes one self-terminating sound: an oscillator with vibrato,
// tremolo, a lowpass and a low-shelf filter, a send bus and a gain envelope.
// Engines build and own the actual nodes; callers only hand the event over.
type NoteEvent struct {
	Frequency float64 // Hz, including the onset pitch offset
	Waveform  Waveform
	Lightness float64 // 0..100, kept for engines that want to re-derive anything

	Volume     float64 // Per-note envelope peak
	MasterGain float64 // Shared master gain, perceptually scaled
	Duration   float64 // Seconds
	Attack     float64
	Sustain    float64 // Fraction of Volume at the midpoint
	Floor      float64
	Release    float64

	VibratoRate  float64
	VibratoDepth float64
	TremoloRate  float64
	TremoloDepth float64

	LowpassCutoff  float64
	ShelfFrequency float64
	ShelfGain      float64 // dB
	ReverbSend     float64
}

// BuildNote derives every acoustic parameter of a note from the pixel's
// frequency and lightness and the current playback settings.
// masterVolume is the linear user volume in [0, 1].
func BuildNote(freq, lightness float64, wave Waveform, masterVolume, duration float64, rnd common.RandomSource) NoteEvent {
	cfg := NoteConfig

	if masterVolume < 0 {
		masterVolume = 0
	}
	if masterVolume > 1 {
		masterVolume = 1
	}

	return NoteEvent{
		Frequency: freq + (rnd.Random()-0.5)*cfg.PitchJitter,
		Waveform:  wave,
		Lightness: lightness,

		Volume:     math.Max(cfg.MinNoteGain, cfg.NoteGainBase+lightness/100),
		MasterGain: masterVolume * masterVolume,
		Duration:   duration,
		Attack:     cfg.Attack,
		Sustain:    cfg.SustainLevel,
		Floor:      cfg.DecayFloor,
		Release:    cfg.ReleaseTail,

		VibratoRate:  cfg.VibratoBaseRate + lightness/cfg.VibratoRateDiv,
		VibratoDepth: math.Max(cfg.VibratoMinDepth, lightness/cfg.VibratoDepthDiv),
		TremoloRate:  cfg.TremoloBaseRate + lightness/cfg.TremoloRateDiv,
		TremoloDepth: math.Max(cfg.TremoloMinDepth, lightness/cfg.TremoloDepthDiv),

		LowpassCutoff:  cfg.LowpassBase + lightness*cfg.LowpassPerLight,
		ShelfFrequency: cfg.ShelfFrequency,
		ShelfGain:      cfg.ShelfMaxGain - lightness/cfg.ShelfGainDiv,
		ReverbSend:     cfg.ReverbSendBase + lightness/cfg.ReverbSendDiv,
	}
}

// StopTime is the offset, from onset, at which every node of the note stops.
func (n NoteEvent) StopTime() float64 {
	return n.Duration + n.Release
}

// EnvelopeTimes returns the end of the attack ramp and the start of the
// exponential decay. The midpoint never precedes the attack so very short
// notes still ramp up before they decay.
func (n NoteEvent) EnvelopeTimes() (attackEnd, decayStart float64) {
	attackEnd = n.Attack
	if attackEnd > n.Duration {
		attackEnd = n.Duration
	}
	decayStart = n.Duration * 0.5
	if decayStart < attackEnd {
		decayStart = attackEnd
	}
	return attackEnd, decayStart
}

// Envelope is the note gain at t seconds after onset, before tremolo.
// Linear attack to Volume, linear move to Sustain*Volume at the midpoint,
// then exponential decay to Floor at Duration, held afterwards.
func (n NoteEvent) Envelope(t float64) float64 {
	if t <= 0 {
		return 0
	}
	attackEnd, decayStart := n.EnvelopeTimes()
	peak := n.Volume
	sustain := n.Volume * n.Sustain

	switch {
	case t < attackEnd:
		return peak * t / attackEnd
	case t < decayStart:
		return peak + (sustain-peak)*(t-attackEnd)/(decayStart-attackEnd)
	case t < n.Duration:
		if sustain <= 0 || n.Floor <= 0 {
			return n.Floor
		}
		return sustain * math.Pow(n.Floor/sustain, (t-decayStart)/(n.Duration-decayStart))
	}
	return n.Floor
}

// MIDIKey returns the nearest equal-tempered MIDI key for the note and the
// remaining offset in cents.
func (n NoteEvent) MIDIKey() (key int, cents float64) {
	if n.Frequency <= 0 || math.IsNaN(n.Frequency) || math.IsInf(n.Frequency, 0) {
		return 60, 0
	}
	exact := 69 + 12*math.Log2(n.Frequency/440)
	key = int(math.Round(exact))
	cents = (exact - float64(key)) * 100
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return key, cents
}
