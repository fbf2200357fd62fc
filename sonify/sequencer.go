package sonify

import (
	"errors"
	"image/color"
	"time"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/clock"
	"github.com/simukka/pixel-sonify/common"
)

const (
	LeadIn           = 350 * time.Millisecond // Before the first sample, lets the audio engine settle
	SettleDelay      = 100 * time.Millisecond // Between stopping and decoding a new image
	UnlockCheckDelay = 300 * time.Millisecond // Before deciding autoplay is blocked
)

// ErrNoImage is returned when playback is requested before an image is loaded.
var ErrNoImage = errors.New("no image loaded")

// Engine turns note events into sound. Play returns the delay until the
// note is audible; the engine owns every node it creates and stops them on
// its own once the note's release tail is over.
type Engine interface {
	Play(n audio.NoteEvent) time.Duration
	StopAll()
}

// Canvas shows scan progress. FillSample paints the cell (x, y) of a
// cols×rows grid laid over the original image.
type Canvas interface {
	FillSample(x, y, cols, rows int, c color.RGBA)
	DrawOriginal()
}

// State of the sequencer.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Visit describes one processed sample.
type Visit struct {
	X, Y      int
	Color     color.RGBA
	Hue       float64
	Lightness float64
	Note      audio.NoteEvent
}

// Sequencer walks a SampleBuffer in raster order and plays one note per
// sample. All methods and callbacks must run on the scheduler's goroutine.
type Sequencer struct {
	params *Parameters
	engine Engine
	canvas Canvas
	sched  clock.Scheduler
	rnd    common.RandomSource
	log    Logger

	buf   *SampleBuffer
	state State
	x, y  int

	timers     map[int]clock.Timer
	nextTimer  int
	generation uint64

	onSample []func(Visit)
	onStop   []func()
}

// NewSequencer wires a sequencer to its collaborators. A nil logger
// discards messages.
func NewSequencer(params *Parameters, engine Engine, canvas Canvas, sched clock.Scheduler, rnd common.RandomSource, log Logger) *Sequencer {
	if log == nil {
		log = NopLogger
	}
	return &Sequencer{
		params: params,
		engine: engine,
		canvas: canvas,
		sched:  sched,
		rnd:    rnd,
		log:    log,
		timers: make(map[int]clock.Timer),
	}
}

func (s *Sequencer) State() State         { return s.state }
func (s *Sequencer) Image() *SampleBuffer { return s.buf }
func (s *Sequencer) Cursor() (x, y int)   { return s.x, s.y }
func (s *Sequencer) Pending() int         { return len(s.timers) }
func (s *Sequencer) Params() *Parameters  { return s.params }

// OnSample registers fn to run for every sample played.
func (s *Sequencer) OnSample(fn func(Visit)) {
	s.onSample = append(s.onSample, fn)
}

// OnStop registers fn to run whenever playback stops, either explicitly or
// at the end of the image.
func (s *Sequencer) OnStop(fn func()) {
	s.onStop = append(s.onStop, fn)
}

// SetImage replaces the sample buffer. Any playback in progress is reset
// first so no pending callback reads the new buffer.
func (s *Sequencer) SetImage(buf *SampleBuffer) {
	s.Reset()
	s.buf = buf
	s.x, s.y = 0, 0
}

// rewinder is a random source that can replay its sequence from the start.
type rewinder interface {
	Reset()
}

// Start begins a scan from the first sample. It is a no-op while running.
// A rewindable random source is rewound so every scan of an image repeats
// the same variation.
func (s *Sequencer) Start() error {
	if s.buf == nil {
		return ErrNoImage
	}
	if s.state == Running {
		return nil
	}
	s.cancelAll()
	if r, ok := s.rnd.(rewinder); ok {
		r.Reset()
	}
	s.x, s.y = 0, 0
	s.state = Running
	s.params.SetPlay(true)
	s.canvas.DrawOriginal()
	s.log.Debug("scan start", s.buf.Width(), "x", s.buf.Height())
	s.after(LeadIn, s.processSample)
	return nil
}

// Stop ends playback if it is running.
func (s *Sequencer) Stop() {
	if s.state != Running {
		return
	}
	s.Reset()
}

// Reset cancels every pending timer, silences sounding notes, repaints the
// original image and clears the play flag. It does nothing before an image
// is loaded.
func (s *Sequencer) Reset() {
	if s.buf == nil {
		return
	}
	wasRunning := s.state == Running
	s.cancelAll()
	s.engine.StopAll()
	s.canvas.DrawOriginal()
	s.state = Idle
	s.params.SetPlay(false)
	if wasRunning {
		s.log.Debug("scan stopped at", s.x, s.y)
		for _, fn := range s.onStop {
			fn()
		}
	}
}

func (s *Sequencer) processSample() {
	if !s.params.Play() || s.y >= s.buf.Height() {
		s.Stop()
		return
	}
	c, ok := s.buf.At(s.x, s.y)
	if !ok {
		s.Stop()
		return
	}

	hue, _, lightness := RgbToHsl(c.R, c.G, c.B)
	freq := HueToFrequency(hue, lightness, s.params.Scale(), s.rnd)
	duration := s.params.NoteDuration()
	note := audio.BuildNote(freq, lightness, s.params.Waveform(), s.params.Volume(), duration, s.rnd)
	onset := s.engine.Play(note)

	x, y := s.x, s.y
	cols, rows := s.buf.Width(), s.buf.Height()
	s.after(onset, func() {
		s.canvas.FillSample(x, y, cols, rows, c)
	})

	visit := Visit{X: x, Y: y, Color: c, Hue: hue, Lightness: lightness, Note: note}
	for _, fn := range s.onSample {
		fn(visit)
	}
	// A listener may have stopped playback.
	if s.state != Running {
		return
	}

	s.x += s.params.PixelStep()
	if s.x >= cols {
		s.x = 0
		s.y++
	}
	s.after(clock.Seconds(duration), s.processSample)
}

// after schedules fn as part of the pending timer set. Callbacks from an
// earlier generation are ignored even if the host already dequeued them.
func (s *Sequencer) after(d time.Duration, fn func()) {
	gen := s.generation
	id := s.nextTimer
	s.nextTimer++
	s.timers[id] = s.sched.AfterFunc(d, func() {
		delete(s.timers, id)
		if gen != s.generation {
			return
		}
		fn()
	})
}

func (s *Sequencer) cancelAll() {
	s.generation++
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
