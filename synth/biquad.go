package synth

import "math"

// Biquad is a direct form I second-order filter with coefficients
// normalized by a0.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

// NewLowpass builds a resonant lowpass with its Q given in dB, the way a Web
// Audio BiquadFilterNode of type "lowpass" interprets it.
func NewLowpass(sampleRate, cutoff, qdB float64) *Biquad {
	cutoff = clampFreq(cutoff, sampleRate)
	w := 2 * math.Pi * cutoff / sampleRate
	cosw := math.Cos(w)
	alpha := math.Sin(w) / (2 * math.Pow(10, qdB/20))

	a0 := 1 + alpha
	return &Biquad{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

// NewLowShelf boosts (or cuts) everything below freq by gainDB with a shelf
// slope of 1.
func NewLowShelf(sampleRate, freq, gainDB float64) *Biquad {
	freq = clampFreq(freq, sampleRate)
	A := math.Pow(10, gainDB/40)
	w := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(w)
	alpha := math.Sin(w) / 2 * math.Sqrt(2)
	sqA := 2 * math.Sqrt(A) * alpha

	a0 := (A + 1) + (A-1)*cosw + sqA
	return &Biquad{
		b0: A * ((A + 1) - (A-1)*cosw + sqA) / a0,
		b1: 2 * A * ((A - 1) - (A+1)*cosw) / a0,
		b2: A * ((A + 1) - (A-1)*cosw - sqA) / a0,
		a1: -2 * ((A - 1) + (A+1)*cosw) / a0,
		a2: ((A + 1) + (A-1)*cosw - sqA) / a0,
	}
}

// Process filters one sample.
func (f *Biquad) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the filter history.
func (f *Biquad) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

func clampFreq(freq, sampleRate float64) float64 {
	nyquist := sampleRate / 2
	if freq > nyquist*0.99 {
		return nyquist * 0.99
	}
	if freq < 10 {
		return 10
	}
	return freq
}
