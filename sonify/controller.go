package sonify

import (
	"errors"
	"fmt"

	"github.com/simukka/pixel-sonify/clock"
)

// ErrDecode wraps any failure to turn an image source into samples.
var ErrDecode = errors.New("could not decode image")

const blockedMessage = "🔊 Autoplay was blocked by your browser.<br>Click OK to start the audio."

// AudioClock is the shared audio context lifecycle.
type AudioClock interface {
	Running() bool
	Resume(done func(err error))
}

// Prompter shows a blocking message with a single button.
type Prompter interface {
	Prompt(message, button string, onConfirm func())
}

// Controls is the user-facing settings surface.
type Controls interface {
	SetEnabled(enabled bool)
}

// Loader decodes an image source asynchronously into samples.
type Loader interface {
	Load(src string, done func(buf *SampleBuffer, err error))
}

// Controller starts and stops the sequencer around the audio clock's
// suspended and running states, and loads new images.
type Controller struct {
	seq      *Sequencer
	audio    AudioClock
	prompter Prompter
	controls Controls
	loader   Loader
	sched    clock.Scheduler
	log      Logger

	attempt     uint64
	unlockTimer clock.Timer
	loadGen     uint64
	settleTimer clock.Timer
	onLoad      []func(src string, buf *SampleBuffer)
	onLoadError []func(src string, err error)
}

// NewController builds a controller. prompter, controls and loader may be
// nil when the host has no such surface.
func NewController(seq *Sequencer, audio AudioClock, prompter Prompter, controls Controls, loader Loader, sched clock.Scheduler, log Logger) *Controller {
	if log == nil {
		log = NopLogger
	}
	return &Controller{
		seq:      seq,
		audio:    audio,
		prompter: prompter,
		controls: controls,
		loader:   loader,
		sched:    sched,
		log:      log,
	}
}

func (c *Controller) Sequencer() *Sequencer { return c.seq }

// Playing reports whether the sequencer is scanning.
func (c *Controller) Playing() bool {
	return c.seq.State() == Running
}

// OnLoad registers fn to run when a decoded image is accepted, before the
// sequencer switches to it.
func (c *Controller) OnLoad(fn func(src string, buf *SampleBuffer)) {
	c.onLoad = append(c.onLoad, fn)
}

// OnLoadError registers fn to run when a load fails. The error wraps
// ErrDecode.
func (c *Controller) OnLoadError(fn func(src string, err error)) {
	c.onLoadError = append(c.onLoadError, fn)
}

// Start unlocks the audio clock if needed and then starts the sequencer
// exactly once. Calls while playing are ignored.
func (c *Controller) Start() {
	if c.Playing() {
		return
	}
	c.cancelUnlock()
	c.attempt++
	attempt := c.attempt
	started := false

	begin := func() {
		if started || attempt != c.attempt {
			return
		}
		started = true
		c.cancelUnlock()
		if err := c.seq.Start(); err != nil {
			c.log.Warn("playback not started:", err.Error())
		}
	}

	if c.audio.Running() {
		begin()
		return
	}

	c.log.Debug("audio clock is suspended, trying to resume")
	c.audio.Resume(func(err error) {
		if err != nil {
			c.log.Error("audio resume blocked:", err.Error())
			return
		}
		if c.audio.Running() {
			c.log.Debug("audio clock resumed, starting playback")
			begin()
		}
	})

	c.unlockTimer = c.sched.AfterFunc(UnlockCheckDelay, func() {
		c.unlockTimer = nil
		if started || attempt != c.attempt {
			return
		}
		if c.audio.Running() {
			begin()
			return
		}
		c.log.Warn("audio clock still suspended, autoplay is blocked")
		if c.prompter == nil {
			return
		}
		c.setEnabled(false)
		c.prompter.Prompt(blockedMessage, "OK", func() {
			if !c.audio.Running() {
				c.audio.Resume(func(err error) {
					if err != nil {
						c.log.Error("audio resume failed:", err.Error())
					}
				})
			}
			c.setEnabled(true)
			begin()
		})
	})
}

// Stop halts playback and abandons a pending start.
func (c *Controller) Stop() {
	c.attempt++
	c.cancelUnlock()
	c.seq.Stop()
}

// Reset returns to the original image without starting.
func (c *Controller) Reset() {
	c.attempt++
	c.cancelUnlock()
	c.seq.Reset()
}

// SetPlaying starts or stops playback.
func (c *Controller) SetPlaying(play bool) {
	if play {
		c.Start()
	} else {
		c.Stop()
	}
}

// Toggle flips between playing and stopped.
func (c *Controller) Toggle() {
	c.SetPlaying(!c.Playing())
}

// Load stops playback, waits for the settle delay and decodes src. On
// success the new samples replace the old ones and playback starts; on
// failure the previous image stays loaded.
func (c *Controller) Load(src string) {
	c.Stop()
	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
	c.loadGen++
	gen := c.loadGen
	c.settleTimer = c.sched.AfterFunc(SettleDelay, func() {
		c.settleTimer = nil
		c.loader.Load(src, func(buf *SampleBuffer, err error) {
			if gen != c.loadGen {
				return
			}
			if err == nil && buf == nil {
				err = errors.New("empty image")
			}
			if err != nil {
				if !errors.Is(err, ErrDecode) {
					err = fmt.Errorf("%w %q: %v", ErrDecode, src, err)
				}
				c.log.Error(err.Error())
				for _, fn := range c.onLoadError {
					fn(src, err)
				}
				return
			}
			c.install(src, buf)
		})
	})
}

// LoadBuffer installs already decoded samples and starts playback.
func (c *Controller) LoadBuffer(src string, buf *SampleBuffer) {
	c.Stop()
	c.loadGen++
	c.install(src, buf)
}

func (c *Controller) install(src string, buf *SampleBuffer) {
	for _, fn := range c.onLoad {
		fn(src, buf)
	}
	c.seq.SetImage(buf)
	c.log.Debug("image loaded:", src, buf.Width(), "x", buf.Height())
	c.Start()
}

func (c *Controller) cancelUnlock() {
	if c.unlockTimer != nil {
		c.unlockTimer.Stop()
		c.unlockTimer = nil
	}
}

func (c *Controller) setEnabled(enabled bool) {
	if c.controls != nil {
		c.controls.SetEnabled(enabled)
	}
}
