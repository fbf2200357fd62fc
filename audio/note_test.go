package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/simukka/pixel-sonify/common"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildNote_DerivedParameters(t *testing.T) {
	rnd := &common.Sequence{Values: []float64{0.5}} // no pitch offset
	n := BuildNote(440, 50, Sine, 0.5, 0.1875, rnd)

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Frequency", n.Frequency, 440},
		{"Volume", n.Volume, 1.1},
		{"MasterGain", n.MasterGain, 0.25},
		{"VibratoRate", n.VibratoRate, 3 + 50.0/60},
		{"VibratoDepth", n.VibratoDepth, 0.5},
		{"TremoloRate", n.TremoloRate, 4},
		{"TremoloDepth", n.TremoloDepth, 0.2},
		{"LowpassCutoff", n.LowpassCutoff, 3300},
		{"ShelfGain", n.ShelfGain, 7.5},
		{"ShelfFrequency", n.ShelfFrequency, 200},
		{"ReverbSend", n.ReverbSend, 0.65},
		{"StopTime", n.StopTime(), 0.2875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got, tt.expected) {
				t.Errorf("Expected %s to be %f, got %f", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestBuildNote_DarkPixelFloors(t *testing.T) {
	rnd := &common.Sequence{Values: []float64{0.5}}
	n := BuildNote(261.63, 0, Square, 1, 0.5, rnd)

	if !almostEqual(n.Volume, 0.6) {
		t.Errorf("Expected volume 0.6 for black, got %f", n.Volume)
	}
	if !almostEqual(n.VibratoDepth, 0.1) {
		t.Errorf("Expected minimum vibrato depth 0.1, got %f", n.VibratoDepth)
	}
	if !almostEqual(n.TremoloDepth, 0.1) {
		t.Errorf("Expected minimum tremolo depth 0.1, got %f", n.TremoloDepth)
	}
	if !almostEqual(n.ShelfGain, 10) {
		t.Errorf("Expected full bass boost 10 dB, got %f", n.ShelfGain)
	}
}

func TestBuildNote_VolumeIsClampedAndSquared(t *testing.T) {
	rnd := &common.Sequence{Values: []float64{0.5}}
	if n := BuildNote(440, 50, Sine, 2, 1, rnd); !almostEqual(n.MasterGain, 1) {
		t.Errorf("Expected master gain 1 for volume above range, got %f", n.MasterGain)
	}
	if n := BuildNote(440, 50, Sine, -1, 1, rnd); n.MasterGain != 0 {
		t.Errorf("Expected master gain 0 for negative volume, got %f", n.MasterGain)
	}
}

func TestBuildNote_PitchOffsetRange(t *testing.T) {
	low := BuildNote(440, 50, Sine, 1, 1, &common.Sequence{Values: []float64{0}})
	high := BuildNote(440, 50, Sine, 1, 1, &common.Sequence{Values: []float64{0.999999}})

	if !almostEqual(low.Frequency, 439.9) {
		t.Errorf("Expected 439.9 at the low end, got %f", low.Frequency)
	}
	if high.Frequency >= 440.1 || high.Frequency < 440.09 {
		t.Errorf("Expected just under 440.1 at the high end, got %f", high.Frequency)
	}
}

func TestEnvelope_Shape(t *testing.T) {
	n := BuildNote(440, 50, Sine, 1, 1, &common.Sequence{Values: []float64{0.5}})

	if n.Envelope(0) != 0 {
		t.Errorf("Expected silence at onset, got %f", n.Envelope(0))
	}
	if !almostEqual(n.Envelope(0.01), n.Volume/2) {
		t.Errorf("Expected half peak mid-attack, got %f", n.Envelope(0.01))
	}
	if !almostEqual(n.Envelope(0.02), n.Volume) {
		t.Errorf("Expected peak at end of attack, got %f", n.Envelope(0.02))
	}
	if !almostEqual(n.Envelope(0.5), n.Volume*0.8) {
		t.Errorf("Expected 80%% of peak at midpoint, got %f", n.Envelope(0.5))
	}
	if !almostEqual(n.Envelope(1), 0.001) {
		t.Errorf("Expected floor at end, got %f", n.Envelope(1))
	}
	if !almostEqual(n.Envelope(1.05), 0.001) {
		t.Errorf("Expected floor held during release, got %f", n.Envelope(1.05))
	}

	prev := n.Envelope(0.5)
	for tt := 0.55; tt < 1; tt += 0.05 {
		v := n.Envelope(tt)
		if v >= prev {
			t.Fatalf("Expected decay to be monotonic, %f at %f after %f", v, tt, prev)
		}
		prev = v
	}
}

func TestEnvelope_ShortNoteStillAttacks(t *testing.T) {
	// bpm 240, speed 0.1 gives 25 ms notes: the midpoint falls inside the attack
	n := BuildNote(440, 50, Sine, 1, 0.025, &common.Sequence{Values: []float64{0.5}})

	attackEnd, decayStart := n.EnvelopeTimes()
	if attackEnd != 0.02 || decayStart != 0.02 {
		t.Errorf("Expected attack end and decay start at 0.02, got %f and %f", attackEnd, decayStart)
	}
	if v := n.Envelope(0.01); v <= 0 {
		t.Errorf("Expected positive gain during attack, got %f", v)
	}
	if v := n.Envelope(0.0225); v <= 0.001 || v >= n.Volume {
		t.Errorf("Expected decaying gain between floor and peak, got %f", v)
	}
}

func TestParseWaveform(t *testing.T) {
	tests := []struct {
		input    string
		expected Waveform
	}{
		{"sine", Sine},
		{"Square", Square},
		{"SAWTOOTH", Sawtooth},
		{"triangle", Triangle},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w, err := ParseWaveform(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if w != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, w)
			}
		})
	}

	if _, err := ParseWaveform("noise"); !errors.Is(err, ErrUnknownWaveform) {
		t.Errorf("Expected ErrUnknownWaveform, got %v", err)
	}
}

func TestMIDIKey(t *testing.T) {
	n := NoteEvent{Frequency: 440}
	if key, cents := n.MIDIKey(); key != 69 || math.Abs(cents) > 1e-9 {
		t.Errorf("Expected A4 = 69 +0c, got %d %+f", key, cents)
	}

	n = NoteEvent{Frequency: 261.63}
	if key, cents := n.MIDIKey(); key != 60 || math.Abs(cents) > 1 {
		t.Errorf("Expected middle C = 60, got %d %+f", key, cents)
	}

	n = NoteEvent{Frequency: math.NaN()}
	if key, _ := n.MIDIKey(); key != 60 {
		t.Errorf("Expected fallback key 60 for NaN, got %d", key)
	}
}
