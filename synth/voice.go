package synth

import (
	"math"

	"github.com/simukka/pixel-sonify/audio"
)

// lowpassQ is the Web Audio default Q for a BiquadFilterNode, in dB.
const lowpassQ = 1.0

// Voice renders one note: the main oscillator with vibrato, a lowpass branch
// summed into the note gain with tremolo, and the gain fanned out to the
// master bus directly, through the reverb send and through the low shelf.
type Voice struct {
	note       audio.NoteEvent
	sampleRate float64
	frame      int
	stopFrame  int
	phase      float64
	lowpass    *Biquad
	shelf      *Biquad
}

// NewVoice prepares note for rendering at sampleRate.
func NewVoice(note audio.NoteEvent, sampleRate float64) *Voice {
	return &Voice{
		note:       note,
		sampleRate: sampleRate,
		stopFrame:  int(math.Ceil(note.StopTime() * sampleRate)),
		lowpass:    NewLowpass(sampleRate, note.LowpassCutoff, lowpassQ),
		shelf:      NewLowShelf(sampleRate, note.ShelfFrequency, note.ShelfGain),
	}
}

// Done reports whether every node of the note has stopped.
func (v *Voice) Done() bool {
	return v.frame >= v.stopFrame
}

// Render adds up to len(dst) mono samples of the voice, before the master
// gain, and returns how many it wrote.
func (v *Voice) Render(dst []float32) int {
	n := 0
	for ; n < len(dst) && !v.Done(); n++ {
		dst[n] = float32(v.next())
	}
	return n
}

func (v *Voice) next() float64 {
	n := &v.note
	t := float64(v.frame) / v.sampleRate
	v.frame++

	freq := n.Frequency + n.VibratoDepth*math.Sin(2*math.Pi*n.VibratoRate*t)
	s := oscillate(n.Waveform, v.phase)
	v.phase += freq / v.sampleRate
	v.phase -= math.Floor(v.phase)

	in := s + v.lowpass.Process(s)
	gain := n.Envelope(t) + n.TremoloDepth*math.Sin(2*math.Pi*n.TremoloRate*t)
	out := in * gain

	return out + out*n.ReverbSend + v.shelf.Process(out)
}

// oscillate evaluates a naive waveform at phase in [0, 1).
func oscillate(wave audio.Waveform, phase float64) float64 {
	switch wave {
	case audio.Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case audio.Sawtooth:
		return 2*phase - 1
	case audio.Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
