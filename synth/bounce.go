package synth

import (
	"time"

	"github.com/simukka/pixel-sonify/clock"
)

// BlockFrames is the rendering granularity of Bounce. Notes triggered by the
// clock start on the next block boundary.
const BlockFrames = 64

// Bounce renders offline: it advances vc one block at a time and renders the
// mixer after each step, until done reports true and the last voice has
// finished, or limit is reached. The result is interleaved stereo.
func Bounce(vc *clock.VirtualClock, m *Mixer, done func() bool, limit time.Duration) []float32 {
	sr := m.SampleRate()
	block := make([]float32, BlockFrames*Channels)
	var out []float32

	for frame := int64(0); ; frame += BlockFrames {
		at := time.Duration(frame) * time.Second / time.Duration(sr)
		if at > limit {
			break
		}
		if at > vc.Now() {
			vc.Advance(at - vc.Now())
		}
		if done() && m.Sounding() == 0 {
			break
		}
		m.Render(block)
		out = append(out, block...)
	}
	return out
}
