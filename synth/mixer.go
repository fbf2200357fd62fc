// Package synth renders note events in software: the same oscillator,
// modulation, filter and envelope graph the browser builds with Web Audio,
// mixed onto one stereo bus for live output or export.
package synth

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/viterin/vek/vek32"

	"github.com/simukka/pixel-sonify/audio"
)

const (
	SampleRate = 44100
	Channels   = 2
)

// Mixer sums every sounding voice through a shared master gain. It is safe
// for use from the sequencer goroutine and an audio output goroutine at once.
type Mixer struct {
	mu         sync.Mutex
	sampleRate int
	voices     []*Voice
	master     float32
	frames     int64

	mix []float32
	tmp []float32
	out []float32
}

// NewMixer creates a silent mixer.
func NewMixer(sampleRate int) *Mixer {
	return &Mixer{sampleRate: sampleRate, master: 1}
}

func (m *Mixer) SampleRate() int { return m.sampleRate }

// Play starts a voice at the next rendered frame and sets the master gain
// from the note, as every note in the browser does.
func (m *Mixer) Play(n audio.NoteEvent) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = append(m.voices, NewVoice(n, float64(m.sampleRate)))
	m.master = float32(n.MasterGain)
	return 0
}

// StopAll cuts every voice immediately.
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = nil
}

// Sounding is the number of voices still producing output.
func (m *Mixer) Sounding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Elapsed is the amount of audio rendered so far.
func (m *Mixer) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Duration(m.frames) * time.Second / time.Duration(m.sampleRate)
}

// Render fills out with interleaved stereo frames.
func (m *Mixer) Render(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.render(out)
}

func (m *Mixer) render(out []float32) {
	frames := len(out) / Channels
	m.mix = vek32.Zeros_Into(grow(m.mix, frames), frames)
	m.tmp = grow(m.tmp, frames)

	live := m.voices[:0]
	for _, v := range m.voices {
		tmp := vek32.Zeros_Into(m.tmp, frames)
		v.Render(tmp)
		vek32.Add_Inplace(m.mix, tmp)
		if !v.Done() {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(m.voices); i++ {
		m.voices[i] = nil
	}
	m.voices = live

	vek32.MulNumber_Inplace(m.mix, m.master)
	for i, s := range m.mix {
		for c := 0; c < Channels; c++ {
			out[i*Channels+c] = s
		}
	}
	m.frames += int64(frames)
}

// Read renders float32 little-endian stereo for an audio output stream. It
// never returns io.EOF; silence is rendered when nothing is sounding.
func (m *Mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(p) / (4 * Channels)
	m.out = grow(m.out, frames*Channels)
	m.render(m.out)
	for i, s := range m.out {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 4 * Channels, nil
}

// Normalize scales buf down so its peak is at most ceiling. It returns the
// peak found before scaling.
func Normalize(buf []float32, ceiling float32) float32 {
	if len(buf) == 0 {
		return 0
	}
	peak := vek32.Max(vek32.Abs(buf))
	if peak > ceiling {
		vek32.MulNumber_Inplace(buf, ceiling/peak)
	}
	return peak
}

func grow(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
