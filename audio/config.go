package audio

// Config holds the constants that shape every note's subgraph.
type Config struct {
	// Envelope
	Attack       float64 // Seconds from silence to the per-note peak
	SustainLevel float64 // Fraction of the peak reached at the note's midpoint
	DecayFloor   float64 // Target of the final exponential decay
	ReleaseTail  float64 // Seconds every node keeps running after the note ends

	// Per-note loudness
	MinNoteGain  float64 // Floor so dark pixels stay audible
	NoteGainBase float64 // Added to lightness/100
	PitchJitter  float64 // Full span of the random onset offset (Hz)

	// Vibrato LFO on the oscillator frequency
	VibratoBaseRate float64
	VibratoRateDiv  float64 // rate = base + lightness/div
	VibratoMinDepth float64
	VibratoDepthDiv float64 // depth = max(min, lightness/div)

	// Tremolo LFO on the note gain
	TremoloBaseRate float64
	TremoloRateDiv  float64
	TremoloMinDepth float64
	TremoloDepthDiv float64

	// Filters
	LowpassBase     float64 // Cutoff at lightness 0
	LowpassPerLight float64 // Added cutoff per lightness point
	ShelfFrequency  float64 // Low-shelf corner
	ShelfMaxGain    float64 // dB at lightness 0
	ShelfGainDiv    float64 // gain = max - lightness/div

	// Send bus
	ReverbSendBase float64
	ReverbSendDiv  float64
}

var NoteConfig = Config{
	Attack:       0.02,
	SustainLevel: 0.8,
	DecayFloor:   0.001,
	ReleaseTail:  0.1,

	MinNoteGain:  0.3,
	NoteGainBase: 0.6,
	PitchJitter:  0.2,

	VibratoBaseRate: 3,
	VibratoRateDiv:  60,
	VibratoMinDepth: 0.1,
	VibratoDepthDiv: 100,

	TremoloBaseRate: 3,
	TremoloRateDiv:  50,
	TremoloMinDepth: 0.1,
	TremoloDepthDiv: 250,

	LowpassBase:     800,
	LowpassPerLight: 50,
	ShelfFrequency:  200,
	ShelfMaxGain:    10,
	ShelfGainDiv:    20,

	ReverbSendBase: 0.4,
	ReverbSendDiv:  200,
}
