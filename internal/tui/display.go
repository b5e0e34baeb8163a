package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ProgramOptions configures Run.
type ProgramOptions struct {
	Input     io.Reader // Default: os.Stdin.
	Output    io.Writer // Default: os.Stdout.
	AltScreen bool      // Use the alternate screen buffer.
}

// IsTerminal reports whether f is connected to a terminal. Non-file
// readers and writers never are.
func IsTerminal(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Run starts the form program and blocks until the user quits or ctx is
// cancelled. It returns the final model so callers can inspect submissions.
func Run(ctx context.Context, m Model, opts ProgramOptions) (Model, error) {
	teaOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		teaOpts = append(teaOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, teaOpts...).Run()
	if err != nil {
		return m, fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
