package sonify

import (
	"math"
	"testing"

	"github.com/simukka/pixel-sonify/common"
)

func TestRgbToHsl(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, l float64
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 100},
		{"red", 255, 0, 0, 0, 100, 50},
		{"green", 0, 255, 0, 120, 100, 50},
		{"blue", 0, 0, 255, 240, 100, 50},
		{"grey", 128, 128, 128, 0, 0, 50.2},
		{"orange", 255, 128, 0, 30.12, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := RgbToHsl(tt.r, tt.g, tt.b)
			if h != tt.h || s != tt.s || l != tt.l {
				t.Errorf("Expected (%v, %v, %v), got (%v, %v, %v)", tt.h, tt.s, tt.l, h, s, l)
			}
		})
	}
}

func TestRgbToHsl_HueBelow360(t *testing.T) {
	for b := 0; b < 256; b++ {
		h, _, _ := RgbToHsl(255, 0, uint8(b))
		if h < 0 || h >= 360 {
			t.Fatalf("Expected hue in [0,360) for (255,0,%d), got %v", b, h)
		}
	}
}

func TestHueToFrequency_FiniteForAllScales(t *testing.T) {
	names := append(ScaleNames(), "NoSuchScale", "")
	rng := common.NewSeededRNG(7)

	for _, name := range names {
		for hue := 0.0; hue < 360; hue += 7.5 {
			for l := 0.0; l <= 100; l += 5 {
				f := HueToFrequency(hue, l, name, rng)
				if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
					t.Fatalf("Expected finite positive frequency for %q hue=%v l=%v, got %v", name, hue, l, f)
				}
			}
		}
	}
}

// neutral pins the detune to zero and skips the harmonic jump.
func neutral() *common.Sequence {
	return &common.Sequence{Values: []float64{0.5, 0.5}}
}

func TestHueToFrequency_SquareRootIndex(t *testing.T) {
	major := Scales["Major"]
	tests := []struct {
		hue  float64
		want float64
	}{
		{0, major[0]},
		{9, major[0]},   // sqrt(0.025)*6 = 0.95
		{11, major[1]},  // sqrt(0.0306)*6 = 1.05
		{90, major[3]},  // sqrt(0.25)*6 = 3
		{240, major[4]}, // sqrt(0.667)*6 = 4.90
		{359.9, major[5]},
	}
	for _, tt := range tests {
		// lightness 50 keeps the octave: floor(1.5)-1 = 0
		got := HueToFrequency(tt.hue, 50, "Major", neutral())
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("hue %v: expected %v, got %v", tt.hue, tt.want, got)
		}
	}
}

func TestHueToFrequency_OctaveShift(t *testing.T) {
	tests := []struct {
		lightness float64
		factor    float64
	}{
		{0, 0.5},
		{33, 0.5},
		{34, 1},
		{66, 1},
		{67, 2},
		{100, 4},
	}
	for _, tt := range tests {
		got := HueToFrequency(0, tt.lightness, "Major", neutral())
		want := MiddleC * tt.factor
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("lightness %v: expected %v, got %v", tt.lightness, want, got)
		}
	}
}

func TestHueToFrequency_UnknownScaleFallsBack(t *testing.T) {
	got := HueToFrequency(90, 50, "Dorian", neutral())
	want := HueToFrequency(90, 50, "Major", neutral())
	if got != want {
		t.Errorf("Expected Major fallback %v, got %v", want, got)
	}
}

func TestHueToFrequency_NonFiniteInputFallsBack(t *testing.T) {
	for _, hue := range []float64{math.NaN(), math.Inf(1), -10} {
		got := HueToFrequency(hue, 50, "Major", neutral())
		if got != MiddleC {
			t.Errorf("hue %v: expected middle C, got %v", hue, got)
		}
	}
	if got := HueToFrequency(0, math.NaN(), "Major", neutral()); got != MiddleC {
		t.Errorf("NaN lightness: expected middle C, got %v", got)
	}
}

func TestHueToFrequency_RandomVariation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"lowest detune", []float64{0, 0.5}, MiddleC - 2.5},
		{"highest detune", []float64{1, 0.5}, MiddleC + 2.5},
		{"fifth", []float64{0.5, 0.9, 0.9}, MiddleC * 1.5},
		{"octave", []float64{0.5, 0.9, 0.1}, MiddleC * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HueToFrequency(0, 50, "Major", &common.Sequence{Values: tt.values})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHueToFrequency_HarmonicDistribution(t *testing.T) {
	rng := common.NewSeededRNG(42)
	const n = 20000
	plain, fifth, octave := 0, 0, 0
	for i := 0; i < n; i++ {
		f := HueToFrequency(0, 50, "Major", rng)
		switch {
		case f < MiddleC+3:
			plain++
		case f < MiddleC*1.5+4:
			fifth++
		default:
			octave++
		}
	}
	if math.Abs(float64(plain)/n-0.5) > 0.03 {
		t.Errorf("Expected about half the notes unchanged, got %d of %d", plain, n)
	}
	if math.Abs(float64(fifth)/n-0.25) > 0.03 {
		t.Errorf("Expected about a quarter raised a fifth, got %d of %d", fifth, n)
	}
	if math.Abs(float64(octave)/n-0.25) > 0.03 {
		t.Errorf("Expected about a quarter raised an octave, got %d of %d", octave, n)
	}
}
