package sonify

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type controllerRig struct {
	*rig
	audio    *fakeAudioClock
	prompter *fakePrompter
	controls *fakeControls
	loader   *fakeLoader
	log      *recordLogger
	ctrl     *Controller
}

func newControllerRig(running bool) *controllerRig {
	r := &controllerRig{
		rig:      newRig(3, 2),
		audio:    &fakeAudioClock{running: running},
		prompter: &fakePrompter{},
		controls: &fakeControls{},
		loader:   &fakeLoader{images: map[string]*SampleBuffer{}, errs: map[string]error{}},
		log:      &recordLogger{},
	}
	r.ctrl = NewController(r.seq, r.audio, r.prompter, r.controls, r.loader, r.clock, r.log)
	return r
}

func TestController_StartWhenAudioRunning(t *testing.T) {
	r := newControllerRig(true)
	r.ctrl.Start()

	if !r.ctrl.Playing() {
		t.Error("Expected playback to start immediately")
	}
	if r.audio.resumeCalls != 0 {
		t.Errorf("Expected no resume, got %d", r.audio.resumeCalls)
	}
	r.clock.RunUntilIdle(time.Hour)
	if len(r.prompter.messages) != 0 {
		t.Error("Expected no prompt")
	}
	if len(r.engine.notes) != 6 {
		t.Errorf("Expected 6 notes, got %d", len(r.engine.notes))
	}
}

func TestController_ResumeThenStart(t *testing.T) {
	r := newControllerRig(false)
	r.audio.resumeResult = true
	r.ctrl.Start()

	if r.ctrl.Playing() {
		t.Fatal("Expected playback to wait for the audio clock")
	}
	r.audio.complete()
	if !r.ctrl.Playing() {
		t.Fatal("Expected playback to start once resumed")
	}
	originals := r.canvas.originals

	r.clock.Advance(UnlockCheckDelay)
	if r.canvas.originals != originals {
		t.Error("Expected the unlock check not to start playback again")
	}
	if len(r.prompter.messages) != 0 {
		t.Error("Expected no prompt after a successful resume")
	}
}

func TestController_ClockRunningByCheck(t *testing.T) {
	r := newControllerRig(false)
	r.ctrl.Start()

	r.audio.running = true
	r.clock.Advance(UnlockCheckDelay)
	if !r.ctrl.Playing() {
		t.Fatal("Expected the check to start playback")
	}
	originals := r.canvas.originals

	r.audio.complete()
	if r.canvas.originals != originals {
		t.Error("Expected the late resume not to start playback again")
	}
}

func TestController_AutoplayBlocked(t *testing.T) {
	r := newControllerRig(false)
	r.ctrl.Start()
	r.audio.complete()

	r.clock.Advance(UnlockCheckDelay - time.Millisecond)
	if len(r.prompter.messages) != 0 {
		t.Fatal("Expected no prompt before the check delay")
	}
	r.clock.Advance(time.Millisecond)
	if len(r.prompter.messages) != 1 {
		t.Fatalf("Expected one prompt, got %d", len(r.prompter.messages))
	}
	if !strings.Contains(r.prompter.messages[0], "Autoplay was blocked") {
		t.Errorf("Expected autoplay message, got %q", r.prompter.messages[0])
	}
	if r.controls.enabled() {
		t.Error("Expected controls disabled while the prompt is open")
	}
	if r.ctrl.Playing() {
		t.Error("Expected no playback before confirmation")
	}

	r.prompter.confirm()
	if !r.controls.enabled() {
		t.Error("Expected controls enabled after confirmation")
	}
	if !r.ctrl.Playing() {
		t.Fatal("Expected playback after confirmation")
	}
	if r.audio.resumeCalls != 2 {
		t.Errorf("Expected confirmation to resume again, got %d resume calls", r.audio.resumeCalls)
	}
	originals := r.canvas.originals

	r.prompter.confirm()
	if r.canvas.originals != originals {
		t.Error("Expected playback to be started exactly once")
	}
}

func TestController_StopCancelsUnlockCheck(t *testing.T) {
	r := newControllerRig(false)
	r.ctrl.Start()
	r.ctrl.Stop()

	r.audio.running = true
	r.audio.complete()
	r.clock.Advance(time.Second)

	if r.ctrl.Playing() {
		t.Error("Expected a stopped start not to resume playback")
	}
	if len(r.prompter.messages) != 0 {
		t.Error("Expected no prompt after stop")
	}
	if r.clock.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", r.clock.Pending())
	}
}

func TestController_Toggle(t *testing.T) {
	r := newControllerRig(true)
	r.ctrl.Toggle()
	if !r.ctrl.Playing() {
		t.Error("Expected toggle to start")
	}
	r.ctrl.Toggle()
	if r.ctrl.Playing() {
		t.Error("Expected toggle to stop")
	}
	if r.params.Play() {
		t.Error("Expected play flag cleared")
	}
}

func TestController_LoadSuccess(t *testing.T) {
	r := newControllerRig(true)
	r.loader.images["next.png"] = testImage(2, 2)
	var loaded string
	r.ctrl.OnLoad(func(src string, buf *SampleBuffer) { loaded = src })

	r.ctrl.Start()
	r.ctrl.Load("next.png")
	if r.ctrl.Playing() {
		t.Error("Expected Load to stop playback immediately")
	}
	r.clock.Advance(SettleDelay - time.Millisecond)
	if len(r.loader.calls) != 0 {
		t.Fatal("Expected decode to wait for the settle delay")
	}
	r.clock.Advance(time.Millisecond)
	if len(r.loader.calls) != 1 {
		t.Fatalf("Expected one decode, got %d", len(r.loader.calls))
	}
	if loaded != "next.png" {
		t.Errorf("Expected OnLoad with next.png, got %q", loaded)
	}
	if r.seq.Image().Width() != 2 {
		t.Errorf("Expected the new image installed, got width %d", r.seq.Image().Width())
	}
	if !r.ctrl.Playing() {
		t.Error("Expected playback to start after load")
	}
}

func TestController_LoadFailureKeepsState(t *testing.T) {
	r := newControllerRig(true)
	r.loader.errs["broken.png"] = errors.New("bad header")
	before := r.seq.Image()

	r.ctrl.Load("broken.png")
	r.clock.Advance(SettleDelay)

	if r.seq.Image() != before {
		t.Error("Expected the previous image to stay loaded")
	}
	if r.ctrl.Playing() {
		t.Error("Expected no playback after a failed load")
	}
	if len(r.log.errors) != 1 {
		t.Fatalf("Expected one logged error, got %d", len(r.log.errors))
	}
	if !strings.Contains(r.log.errors[0], "bad header") {
		t.Errorf("Expected the cause in the log, got %q", r.log.errors[0])
	}
}

func TestController_LoadFailureNotifies(t *testing.T) {
	r := newControllerRig(true)
	r.loader.errs["broken.png"] = errors.New("bad header")
	var failed []string
	var cause error
	r.ctrl.OnLoadError(func(src string, err error) {
		failed = append(failed, src)
		cause = err
	})
	r.ctrl.OnLoad(func(src string, buf *SampleBuffer) {
		t.Errorf("Expected no OnLoad for %s", src)
	})

	r.ctrl.Load("broken.png")
	r.clock.Advance(SettleDelay)

	if len(failed) != 1 || failed[0] != "broken.png" {
		t.Fatalf("Expected one failure for broken.png, got %v", failed)
	}
	if !errors.Is(cause, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", cause)
	}
}

func TestController_LatestLoadWins(t *testing.T) {
	r := newControllerRig(true)
	r.loader.images["a.png"] = testImage(2, 2)
	r.loader.images["b.png"] = testImage(4, 4)

	r.ctrl.Load("a.png")
	r.ctrl.Load("b.png")
	r.clock.Advance(time.Second)

	if len(r.loader.calls) != 1 || r.loader.calls[0] != "b.png" {
		t.Errorf("Expected only b.png decoded, got %v", r.loader.calls)
	}
	if r.seq.Image().Width() != 4 {
		t.Errorf("Expected b.png installed, got width %d", r.seq.Image().Width())
	}
}
