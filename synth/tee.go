package synth

import (
	"time"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/sonify"
)

// Tee plays every note on each engine. The onset it reports is the latest
// of theirs.
type Tee []sonify.Engine

func (t Tee) Play(n audio.NoteEvent) time.Duration {
	var onset time.Duration
	for _, e := range t {
		if d := e.Play(n); d > onset {
			onset = d
		}
	}
	return onset
}

func (t Tee) StopAll() {
	for _, e := range t {
		e.StopAll()
	}
}
