//go:build !js
// +build !js

package synth

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Mixer to the default audio device. It doubles as the
// audio clock for the playback controller.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	ready  chan struct{}
}

// NewPlayer opens the audio device and starts streaming m. The device may
// not be ready when this returns; Running reports when it is.
func NewPlayer(m *Mixer) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   m.SampleRate(),
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   40 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	p := &Player{ctx: ctx, ready: ready}
	go func() {
		<-ready
		p.player = ctx.NewPlayer(m)
		p.player.Play()
	}()
	return p, nil
}

// Running reports whether the device is open and not suspended.
func (p *Player) Running() bool {
	select {
	case <-p.ready:
		return p.ctx.Err() == nil
	default:
		return false
	}
}

// Resume waits for the device and resumes it if it was suspended. done is
// called from another goroutine.
func (p *Player) Resume(done func(err error)) {
	go func() {
		<-p.ready
		if err := p.ctx.Resume(); err != nil {
			done(fmt.Errorf("cannot resume audio: %w", err))
			return
		}
		done(nil)
	}()
}

// Close stops the stream.
func (p *Player) Close() error {
	select {
	case <-p.ready:
	default:
		return nil
	}
	if err := p.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend audio: %w", err)
	}
	return nil
}
