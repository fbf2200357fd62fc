package sonify

// MiddleC is the fallback frequency for any note that cannot be mapped.
const MiddleC = 261.63

// Scales maps a scale name to its ascending base frequencies, C4 to C5.
var Scales = map[string][]float64{
	"Major":      {261.63, 293.66, 329.63, 392.0, 440.0, 523.25},                                                        // C D E G A C
	"Minor":      {261.63, 293.66, 311.13, 392.0, 415.3, 523.25},                                                        // C D D# G G# C
	"Pentatonic": {261.63, 293.66, 349.23, 392.0, 466.16, 523.25},                                                       // C D F G A# C
	"Blues":      {261.63, 293.66, 311.13, 349.23, 392.0, 466.16, 523.25},                                               // C D D# F G A# C
	"Chromatic":  {261.63, 277.18, 293.66, 311.13, 329.63, 349.23, 369.99, 392.0, 415.3, 440.0, 466.16, 493.88, 523.25}, // All notes in C
	"WholeTone":  {261.63, 293.66, 329.63, 369.99, 415.3, 466.16, 523.25},                                               // Whole tone steps
}

// DefaultScale is used whenever a scale name is not in Scales.
const DefaultScale = "Major"

// scaleOrder is the display order used by the panel and the CLI.
var scaleOrder = []string{"Major", "Minor", "Pentatonic", "Blues", "Chromatic", "WholeTone"}

// ScaleInfo describes a scale for menus and the server's scale listing.
type ScaleInfo struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Notes []float64 `json:"notes"`
}

// ScaleFrequencies returns the frequencies of the named scale, or the
// default scale when the name is unknown.
func ScaleFrequencies(name string) []float64 {
	if freqs, ok := Scales[name]; ok {
		return freqs
	}
	return Scales[DefaultScale]
}

// IsScale reports whether name is a known scale.
func IsScale(name string) bool {
	_, ok := Scales[name]
	return ok
}

// ScaleNames returns the known scale names in display order.
func ScaleNames() []string {
	names := make([]string, len(scaleOrder))
	copy(names, scaleOrder)
	return names
}

// ScaleInfos returns every scale in display order.
func ScaleInfos() []ScaleInfo {
	infos := make([]ScaleInfo, 0, len(scaleOrder))
	for _, name := range scaleOrder {
		label := name
		if name == "WholeTone" {
			label = "Whole Tone"
		}
		infos = append(infos, ScaleInfo{Name: name, Label: label, Notes: Scales[name]})
	}
	return infos
}
