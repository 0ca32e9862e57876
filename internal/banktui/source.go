// Package banktui collects sparse bank-angle samples interactively: it
// previews the centerline, offers candidate stations and reads one angle per
// chosen station.
package banktui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/banshee-data/trackgeo/internal/track"
)

// ErrAborted is returned when the user leaves without finishing.
var ErrAborted = errors.New("banktui: entry aborted")

// Prompt is a bank.Source that asks the user for samples.
type Prompt struct {
	Center     track.Path
	Candidates []int
	Unit       string

	// In and Out default to the terminal when nil.
	In  io.Reader
	Out io.Writer
}

// Samples runs the interactive program and returns what was entered.
func (p Prompt) Samples() ([]track.BankSample, error) {
	var opts []tea.ProgramOption
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}
	final, err := tea.NewProgram(NewModel(p.Center, p.Candidates, p.Unit), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("banktui: %w", err)
	}
	m, ok := final.(Model)
	if !ok || !m.Done() {
		return nil, ErrAborted
	}
	return m.Samples(), nil
}
