package banktui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/units"
)

type stage int

const (
	askAbscissa stage = iota
	askAngle
)

// Model is the bubbletea model for manual bank entry. It alternates
// between asking for a candidate station and the angle at that station.
type Model struct {
	width  int
	height int

	center     track.Path
	candidates []int
	allowed    map[int]bool
	unit       string

	input   textinput.Model
	stage   stage
	pending int

	// entered maps station index to angle in radians.
	entered map[int]float64
	status  string

	done    bool
	aborted bool
}

// NewModel builds a model offering candidates along center. Angles are
// typed in unit and stored in radians.
func NewModel(center track.Path, candidates []int, unit string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 32
	ti.Focus()

	allowed := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		allowed[c] = true
	}
	m := Model{
		width:      80,
		height:     24,
		center:     center,
		candidates: candidates,
		allowed:    allowed,
		unit:       unit,
		input:      ti,
		entered:    make(map[int]float64),
	}
	m.input.Placeholder = m.placeholder()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			return m.submit(line)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "done") {
		if len(m.entered) < 2 {
			m.status = "need at least two stations before finishing"
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	v, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		m.status = fmt.Sprintf("%q is not a number", line)
		return m, nil
	}

	switch m.stage {
	case askAbscissa:
		if v != math.Trunc(v) || !m.allowed[int(v)] {
			m.status = fmt.Sprintf("station %v is not one of the offered candidates", v)
			return m, nil
		}
		m.pending = int(v)
		m.stage = askAngle
		m.status = ""
	case askAngle:
		m.entered[m.pending] = units.ToRadians(v, m.unit)
		m.status = fmt.Sprintf("station %d set to %v %s", m.pending, v, m.unit)
		m.stage = askAbscissa
	}
	m.input.Placeholder = m.placeholder()
	return m, nil
}

func (m Model) placeholder() string {
	if m.stage == askAngle {
		return fmt.Sprintf("bank angle at station %d (%s)", m.pending, m.unit)
	}
	return "station index, or done"
}

// Samples returns the entered samples ordered by station.
func (m Model) Samples() []track.BankSample {
	out := make([]track.BankSample, 0, len(m.entered))
	for idx, a := range m.entered {
		out = append(out, track.BankSample{Abscissa: float64(idx), Angle: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abscissa < out[j].Abscissa })
	return out
}

// Done reports whether the user finished with "done".
func (m Model) Done() bool { return m.done }

// Aborted reports whether the user quit without finishing.
func (m Model) Aborted() bool { return m.aborted }

func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}
	mapW := max(20, m.width/2-4)
	mapH := max(6, m.height-10)

	left := boxStyle.Render(strings.Join(preview(m.center, mapW, mapH), "\n"))

	var right strings.Builder
	right.WriteString(titleStyle.Render("Candidate stations") + "\n")
	right.WriteString(dimStyle.Render(wrapInts(m.candidates, max(20, m.width-mapW-8))) + "\n\n")
	right.WriteString(titleStyle.Render("Entered") + "\n")
	for _, s := range m.Samples() {
		fmt.Fprintf(&right, "  %4d  %9.4f %s\n", int(s.Abscissa), units.FromRadians(s.Angle, m.unit), m.unit)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Bank angle entry") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right.String()) + "\n")
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(dimStyle.Render("enter: submit  done: finish  esc: abort"))
	return appStyle.Render(b.String())
}

func wrapInts(vals []int, width int) string {
	var b strings.Builder
	col := 0
	for i, v := range vals {
		s := strconv.Itoa(v)
		if i > 0 {
			if col+len(s)+2 > width {
				b.WriteString(",\n")
				col = 0
			} else {
				b.WriteString(", ")
				col += 2
			}
		}
		b.WriteString(s)
		col += len(s)
	}
	return b.String()
}
