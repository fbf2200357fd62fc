package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/pixel-sonify/sonify"
)

// Status is the snapshot shown under the grid.
type Status struct {
	Playing  bool
	BPM      float64
	Speed    float64
	Waveform string
	Scale    string
	Step     int
	Last     *sonify.Visit
	Notes    int
	Err      string
}

// Actions are the controls the model drives. The caller is responsible for
// running them on the playback goroutine.
type Actions struct {
	Toggle    func()
	Reset     func()
	Tempo     func(delta float64)
	NextWave  func()
	NextScale func()
	Status    func() Status
	Quit      func()
}

type UpdateMsg struct{}

type Model struct {
	Grid     *Grid
	Actions  Actions
	Title    string
	quitting bool
}

func NewModel(grid *Grid, actions Actions, title string) Model {
	return Model{Grid: grid, Actions: actions, Title: title}
}

// ListenForUpdates waits for the grid to change.
func ListenForUpdates(grid *Grid) tea.Cmd {
	return func() tea.Msg {
		<-grid.Updates
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Grid)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			call(m.Actions.Quit)
			return m, tea.Quit

		case " ", "p", "enter":
			call(m.Actions.Toggle)

		case "r":
			call(m.Actions.Reset)

		case "+", "=":
			if m.Actions.Tempo != nil {
				m.Actions.Tempo(5)
			}

		case "-", "_":
			if m.Actions.Tempo != nil {
				m.Actions.Tempo(-5)
			}

		case "w":
			call(m.Actions.NextWave)

		case "s":
			call(m.Actions.NextScale)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Grid)
	}

	return m, nil
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var st Status
	if m.Actions.Status != nil {
		st = m.Actions.Status()
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f6f2f0")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	playState := "STOP"
	if st.Playing {
		playState = "PLAY"
	}
	header := headerStyle.Render(fmt.Sprintf("%s  %s  %3.0fbpm  x%.1f  %s  %s  step:%d",
		m.Title, playState, st.BPM, st.Speed, st.Waveform, st.Scale, st.Step))

	status := noteLine(st)
	if st.Err != "" {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Render(st.Err)
	}

	help := dimStyle.Render("space:play/stop  r:reset  +/-:tempo  w:wave  s:scale  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.Grid.View(),
		"",
		status,
		help,
	)
}

// noteLine describes the last visited sample, colored by its hue.
func noteLine(st Status) string {
	if st.Last == nil {
		return "-"
	}
	v := st.Last
	swatch := colorful.Hsl(v.Hue, 1, v.Lightness/100).Clamped()
	return fmt.Sprintf("%s (%2d,%2d)  hue %5.1f  light %4.1f  %7.2fHz  notes:%d",
		lipgloss.NewStyle().Foreground(lipgloss.Color(swatch.Hex())).Render("●"),
		v.X, v.Y, v.Hue, v.Lightness, v.Note.Frequency, st.Notes)
}
