package tui

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/clock"
	"github.com/simukka/pixel-sonify/common"
	"github.com/simukka/pixel-sonify/sonify"
)

func testBuffer(t *testing.T, w, h int) *sonify.SampleBuffer {
	t.Helper()
	pix := make([]uint8, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4] = uint8(i * 20)
		pix[i*4+1] = 100
		pix[i*4+2] = 200
		pix[i*4+3] = 255
	}
	buf, err := sonify.NewSampleBuffer(w, h, pix)
	if err != nil {
		t.Fatalf("Expected buffer, got error %v", err)
	}
	return buf
}

func drain(g *Grid) bool {
	select {
	case <-g.Updates:
		return true
	default:
		return false
	}
}

func TestGridFillAndClear(t *testing.T) {
	g := NewGrid()
	g.SetImage(testBuffer(t, 3, 2))
	drain(g)

	g.FillSample(0, 0, 3, 2, color.RGBA{R: 255, A: 255})
	g.FillSample(2, 1, 3, 2, color.RGBA{G: 255, A: 255})
	if g.Lit() != 2 {
		t.Errorf("Expected 2 lit cells, got %d", g.Lit())
	}
	if !drain(g) {
		t.Errorf("Expected an update after FillSample")
	}

	g.DrawOriginal()
	if g.Lit() != 0 {
		t.Errorf("Expected no lit cells after DrawOriginal, got %d", g.Lit())
	}
}

func TestGridIgnoresForeignGeometry(t *testing.T) {
	g := NewGrid()
	g.SetImage(testBuffer(t, 3, 2))

	g.FillSample(0, 0, 4, 2, color.RGBA{A: 255})
	g.FillSample(3, 0, 3, 2, color.RGBA{A: 255})
	if g.Lit() != 0 {
		t.Errorf("Expected stale cells to be ignored, got %d lit", g.Lit())
	}
}

func TestGridNotifyDoesNotBlock(t *testing.T) {
	g := NewGrid()
	for i := 0; i < 10; i++ {
		g.DrawOriginal()
	}
	if !drain(g) {
		t.Errorf("Expected a pending update")
	}
	if drain(g) {
		t.Errorf("Expected updates to coalesce")
	}
}

func TestGridView(t *testing.T) {
	g := NewGrid()
	if !strings.Contains(g.View(), "no image") {
		t.Errorf("Expected placeholder without an image, got %q", g.View())
	}

	g.SetImage(testBuffer(t, 3, 2))
	g.FillSample(1, 0, 3, 2, color.RGBA{B: 255, A: 255})
	view := g.View()
	if lines := strings.Count(view, "\n") + 1; lines != 2 {
		t.Errorf("Expected 2 rows, got %d", lines)
	}
	if strings.Count(view, "[]") != 1 {
		t.Errorf("Expected one lit marker, got %q", view)
	}
}

type silentEngine struct{}

func (silentEngine) Play(audio.NoteEvent) time.Duration { return 0 }
func (silentEngine) StopAll()                           {}

func TestGridResetMidScanRestoresOriginal(t *testing.T) {
	g := NewGrid()
	buf := testBuffer(t, 3, 2)
	g.SetImage(buf)

	before := make([]colorful.Color, 0, 6)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c, _ := g.Cell(x, y)
			before = append(before, c)
		}
	}

	params, err := sonify.NewParameters(sonify.DefaultSettings)
	if err != nil {
		t.Fatal(err)
	}
	vc := clock.NewVirtualClock()
	seq := sonify.NewSequencer(params, silentEngine{}, g, vc, common.NewSeededRNG(1), nil)
	seq.SetImage(buf)
	seq.Start()
	vc.Advance(sonify.LeadIn + 3*clock.Seconds(params.NoteDuration()))
	if g.Lit() == 0 {
		t.Fatalf("Expected visited cells before reset")
	}

	seq.Reset()

	if g.Lit() != 0 {
		t.Errorf("Expected no lit cells after reset, got %d", g.Lit())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c, lit := g.Cell(x, y)
			if lit || c != before[y*3+x] {
				t.Errorf("Cell (%d,%d): expected original %s, got %s (lit %v)", x, y, before[y*3+x].Hex(), c.Hex(), lit)
			}
		}
	}
	if params.Play() {
		t.Errorf("Expected play flag cleared")
	}
}
