package tui

import (
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/pixel-sonify/sonify"
)

// Grid is the terminal rendition of the image canvas: the sample buffer
// drawn dimmed, with visited cells lit in their own color. The sequencer
// paints it from the playback goroutine while the TUI renders it, so every
// method is safe for concurrent use.
type Grid struct {
	mu      sync.Mutex
	width   int
	height  int
	base    []colorful.Color
	lit     map[int]colorful.Color
	Updates chan struct{}
}

// Dim is how far unvisited cells are blended toward black.
const Dim = 0.55

var stroke, _ = colorful.Hex("#f6f2f0")

func NewGrid() *Grid {
	return &Grid{
		lit:     make(map[int]colorful.Color),
		Updates: make(chan struct{}, 1),
	}
}

// SetImage replaces the displayed samples and clears scan progress.
func (g *Grid) SetImage(buf *sonify.SampleBuffer) {
	g.mu.Lock()
	g.width, g.height = buf.Width(), buf.Height()
	g.base = make([]colorful.Color, 0, g.width*g.height)
	black := colorful.Color{}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c, ok := buf.At(x, y)
			if !ok {
				c = color.RGBA{A: 255}
			}
			g.base = append(g.base, toColorful(c).BlendLab(black, Dim).Clamped())
		}
	}
	g.lit = make(map[int]colorful.Color)
	g.mu.Unlock()
	g.notify()
}

// DrawOriginal erases scan progress.
func (g *Grid) DrawOriginal() {
	g.mu.Lock()
	g.lit = make(map[int]colorful.Color)
	g.mu.Unlock()
	g.notify()
}

// FillSample lights cell (x, y) of a cols x rows grid.
func (g *Grid) FillSample(x, y, cols, rows int, c color.RGBA) {
	g.mu.Lock()
	if cols == g.width && rows == g.height && x >= 0 && x < cols && y >= 0 && y < rows {
		g.lit[y*cols+x] = toColorful(c)
	}
	g.mu.Unlock()
	g.notify()
}

// Cell returns the color shown at (x, y) and whether the cell is lit.
func (g *Grid) Cell(x, y int) (colorful.Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := y*g.width + x
	if c, ok := g.lit[i]; ok {
		return c, true
	}
	return g.base[i], false
}

// Lit returns the number of visited cells on display.
func (g *Grid) Lit() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.lit)
}

// notify wakes the TUI without blocking the caller.
func (g *Grid) notify() {
	select {
	case g.Updates <- struct{}{}:
	default:
	}
}

// View renders two terminal columns per sample.
func (g *Grid) View() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.width == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("no image loaded")
	}

	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			if c, ok := g.lit[i]; ok {
				sb.WriteString(lipgloss.NewStyle().
					Background(lipgloss.Color(c.Hex())).
					Foreground(lipgloss.Color(stroke.Hex())).
					Render("[]"))
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(g.base[i].Hex())).Render("  "))
		}
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
