// Package prompt runs the registration form as a sequence of questions.
// A Driver asks one question at a time; Session feeds the answers through
// the form state machine and reports errors between questions.
package prompt

import (
	"context"
	"errors"
)

var (
	// ErrAborted signals the user aborted input (Ctrl+C or end of input).
	ErrAborted = errors.New("prompt: aborted")
)

// InputConfig configures a single-line text question.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// SelectConfig configures a single-choice question.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// ConfirmConfig configures a yes/no question.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver abstracts how questions reach the user so sessions can be tested
// without a terminal.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	// Select returns the chosen index, or -1 when nothing was chosen.
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Info(ctx context.Context, msg string) error
}
