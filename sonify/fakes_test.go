package sonify

import (
	"image/color"
	"time"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/clock"
	"github.com/simukka/pixel-sonify/common"
)

type fakeEngine struct {
	notes    []audio.NoteEvent
	onset    time.Duration
	stopAlls int
}

func (e *fakeEngine) Play(n audio.NoteEvent) time.Duration {
	e.notes = append(e.notes, n)
	return e.onset
}

func (e *fakeEngine) StopAll() { e.stopAlls++ }

type fill struct {
	X, Y, Cols, Rows int
	Color            color.RGBA
}

type fakeCanvas struct {
	fills     []fill
	originals int
}

func (c *fakeCanvas) FillSample(x, y, cols, rows int, col color.RGBA) {
	c.fills = append(c.fills, fill{x, y, cols, rows, col})
}

func (c *fakeCanvas) DrawOriginal() { c.originals++ }

type rig struct {
	clock  *clock.VirtualClock
	params *Parameters
	engine *fakeEngine
	canvas *fakeCanvas
	seq    *Sequencer
}

func newRig(w, h int) *rig {
	params, err := NewParameters(DefaultSettings)
	if err != nil {
		panic(err)
	}
	r := &rig{
		clock:  clock.NewVirtualClock(),
		params: params,
		engine: &fakeEngine{},
		canvas: &fakeCanvas{},
	}
	r.seq = NewSequencer(params, r.engine, r.canvas, r.clock, common.NewSeededRNG(1), nil)
	if w > 0 && h > 0 {
		r.seq.SetImage(testImage(w, h))
	}
	return r
}

// testImage gives every pixel a distinct red value so visits are traceable.
func testImage(w, h int) *SampleBuffer {
	pix := make([]uint8, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4] = uint8(i * 10)
		pix[i*4+1] = 40
		pix[i*4+2] = 200
		pix[i*4+3] = 255
	}
	buf, err := NewSampleBuffer(w, h, pix)
	if err != nil {
		panic(err)
	}
	return buf
}

type fakeAudioClock struct {
	running     bool
	resumeCalls int
	// resumeResult is applied when a resume completes: it decides whether
	// the clock ends up running.
	resumeResult bool
	resumeErr    error
	pending      []func(error)
}

func (a *fakeAudioClock) Running() bool { return a.running }

func (a *fakeAudioClock) Resume(done func(error)) {
	a.resumeCalls++
	a.pending = append(a.pending, done)
}

// complete settles every outstanding resume request.
func (a *fakeAudioClock) complete() {
	pending := a.pending
	a.pending = nil
	for _, done := range pending {
		if a.resumeErr == nil && a.resumeResult {
			a.running = true
		}
		done(a.resumeErr)
	}
}

type fakePrompter struct {
	messages []string
	confirm  func()
}

func (p *fakePrompter) Prompt(message, button string, onConfirm func()) {
	p.messages = append(p.messages, message)
	p.confirm = onConfirm
}

type fakeControls struct {
	history []bool
}

func (c *fakeControls) SetEnabled(enabled bool) {
	c.history = append(c.history, enabled)
}

func (c *fakeControls) enabled() bool {
	if len(c.history) == 0 {
		return true
	}
	return c.history[len(c.history)-1]
}

type fakeLoader struct {
	images map[string]*SampleBuffer
	errs   map[string]error
	calls  []string
}

func (l *fakeLoader) Load(src string, done func(*SampleBuffer, error)) {
	l.calls = append(l.calls, src)
	if err, ok := l.errs[src]; ok {
		done(nil, err)
		return
	}
	done(l.images[src], nil)
}

type recordLogger struct {
	errors []string
	warns  []string
}

func (l *recordLogger) Debug(args ...interface{}) {}
func (l *recordLogger) Warn(args ...interface{}) {
	l.warns = append(l.warns, sprint(args))
}
func (l *recordLogger) Error(args ...interface{}) {
	l.errors = append(l.errors, sprint(args))
}

func sprint(args []interface{}) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		if str, ok := a.(string); ok {
			s += str
		}
	}
	return s
}
