package synth

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/simukka/pixel-sonify/audio"
)

const (
	TicksPerQuarter = 960
	BendRange       = 2.0 // Semitones either way, the General MIDI default
)

type timedMessage struct {
	at  time.Duration
	msg midi.Message
}

// MidiRecorder captures notes as a standard MIDI file. Each note becomes a
// pitch bend for its detune followed by a note on, closed when it ends, when
// the next note starts or on StopAll.
type MidiRecorder struct {
	now     func() time.Duration
	bpm     float64
	channel uint8

	events  []timedMessage
	open    bool
	openKey uint8
	openEnd time.Duration
}

// NewMidiRecorder records against the now clock. bpm sets the file tempo and
// therefore the tick grid.
func NewMidiRecorder(now func() time.Duration, bpm float64) *MidiRecorder {
	return &MidiRecorder{now: now, bpm: bpm}
}

// Play records a note at the current time.
func (r *MidiRecorder) Play(n audio.NoteEvent) time.Duration {
	at := r.now()
	r.closeNote(at)

	key, cents := n.MIDIKey()
	vel := velocity(n)
	if vel == 0 {
		return 0
	}
	r.add(at, midi.Pitchbend(r.channel, bendValue(cents)))
	r.add(at, midi.NoteOn(r.channel, uint8(key), vel))
	r.open = true
	r.openKey = uint8(key)
	r.openEnd = at + time.Duration(n.Duration*float64(time.Second))
	return 0
}

// StopAll ends the sounding note now.
func (r *MidiRecorder) StopAll() {
	r.closeNote(r.now())
}

// Len is the number of recorded channel messages.
func (r *MidiRecorder) Len() int { return len(r.events) }

func (r *MidiRecorder) closeNote(at time.Duration) {
	if !r.open {
		return
	}
	end := r.openEnd
	if at < end {
		end = at
	}
	r.add(end, midi.NoteOff(r.channel, r.openKey))
	r.open = false
}

func (r *MidiRecorder) add(at time.Duration, msg midi.Message) {
	r.events = append(r.events, timedMessage{at: at, msg: msg})
}

// ticks converts a time offset to ticks on the recorder's tempo grid.
func (r *MidiRecorder) ticks(d time.Duration) uint32 {
	return uint32(math.Round(d.Seconds() * r.bpm / 60 * TicksPerQuarter))
}

// SMF closes any open note and builds the file: a tempo track and a note track.
func (r *MidiRecorder) SMF() (*smf.SMF, error) {
	if r.open {
		r.closeNote(r.openEnd)
	}
	sort.SliceStable(r.events, func(i, j int) bool { return r.events[i].at < r.events[j].at })

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(r.bpm))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("error adding tempo track: %w", err)
	}

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("pixels"))
	var last uint32
	for _, ev := range r.events {
		pos := r.ticks(ev.at)
		track.Add(pos-last, ev.msg)
		last = pos
	}
	track.Close(0)
	if err := sm.Add(track); err != nil {
		return nil, fmt.Errorf("error adding note track: %w", err)
	}
	return sm, nil
}

// WriteTo writes the recording as a standard MIDI file.
func (r *MidiRecorder) WriteTo(w io.Writer) (int64, error) {
	sm, err := r.SMF()
	if err != nil {
		return 0, err
	}
	n, err := sm.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("error writing MIDI file: %w", err)
	}
	return n, nil
}

func velocity(n audio.NoteEvent) uint8 {
	peak := audio.NoteConfig.NoteGainBase + 1
	v := math.Min(n.Volume/peak, 1) * math.Sqrt(n.MasterGain) * 127
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v < 1 {
		return 1
	}
	return uint8(math.Round(v))
}

func bendValue(cents float64) int16 {
	v := math.Round(cents / (BendRange * 100) * 8191)
	if v > 8191 {
		v = 8191
	}
	if v < -8192 {
		v = -8192
	}
	return int16(v)
}
