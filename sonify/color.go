package sonify

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/pixel-sonify/common"
)

// RgbToHsl converts 8-bit RGB to hue in [0,360) and saturation and lightness
// in [0,100], each rounded to two decimals.
func RgbToHsl(r, g, b uint8) (h, s, l float64) {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l = c.Hsl()
	h = round2(h)
	if h >= 360 {
		h -= 360
	}
	return h, round2(s * 100), round2(l * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HueToFrequency picks a note of the named scale for a hue and shifts it by
// octave according to lightness. The square-root index curve gives low hues
// finer resolution than high ones. A small random detune and a 50% chance of
// jumping a fifth or an octave keep repeated colors from sounding mechanical.
func HueToFrequency(hue, lightness float64, scale string, rnd common.RandomSource) float64 {
	freqs := ScaleFrequencies(scale)
	n := len(freqs)

	base := MiddleC
	if pos := math.Sqrt(hue/360) * float64(n); !math.IsNaN(pos) && !math.IsInf(pos, 0) && pos >= 0 {
		base = freqs[int(math.Floor(pos))%n]
	}

	shift := math.Floor((lightness/100)*3) - 1
	if shift < -1 {
		shift = -1
	}
	if shift > 2 {
		shift = 2
	}
	base *= math.Pow(2, shift)

	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		base = MiddleC
	}

	base += (rnd.Random() - 0.5) * 5

	if rnd.Random() > 0.5 {
		if rnd.Random() > 0.5 {
			base *= 1.5
		} else {
			base *= 2
		}
	}

	return base
}
