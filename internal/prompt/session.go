package prompt

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smileynet/signup/internal/form"
)

// Acknowledger renders the notice shown after an accepted submission.
type Acknowledger func(form.Submission) (string, error)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithAcknowledger overrides the success notice.
func WithAcknowledger(ack Acknowledger) SessionOption {
	return func(s *Session) {
		if ack != nil {
			s.ack = ack
		}
	}
}

// WithSingleRun stops the session after the first accepted submission
// instead of offering to register another account.
func WithSingleRun() SessionOption {
	return func(s *Session) {
		s.once = true
	}
}

// Session walks a Form through a Driver.
type Session struct {
	form   *form.Form
	driver Driver
	ack    Acknowledger
	once   bool
}

// NewSession creates a Session for f asking questions through d.
func NewSession(f *form.Form, d Driver, opts ...SessionOption) *Session {
	s := &Session{
		form:   f,
		driver: d,
		ack:    defaultAcknowledger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func defaultAcknowledger(sub form.Submission) (string, error) {
	return fmt.Sprintf("Account Created Successfully ✅ (reference %s)", sub.ID), nil
}

// Run fills the form until it is accepted, prints the acknowledgment and
// optionally starts over. It returns ErrAborted when the user quits early.
func (s *Session) Run(ctx context.Context) error {
	for {
		sub, err := s.fill(ctx)
		if err != nil {
			return err
		}

		msg, err := s.ack(*sub)
		if err != nil {
			return err
		}
		if err := s.driver.Info(ctx, "\n"+msg); err != nil {
			return err
		}

		if s.once {
			return nil
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Register another account?"})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// fill asks every field once, then only the failing ones, until a submit
// is accepted.
func (s *Session) fill(ctx context.Context) (*form.Submission, error) {
	pending := form.Fields()
	for {
		for _, f := range pending {
			if err := s.askField(ctx, f); err != nil {
				return nil, err
			}
		}

		sub, res := s.form.Submit()
		if res.Accepted {
			return sub, nil
		}

		if err := s.driver.Info(ctx, "\nPlease fix the following:"); err != nil {
			return nil, err
		}
		pending = res.Errors.Fields()
		for _, f := range pending {
			if err := s.driver.Info(ctx, fmt.Sprintf("  ✗ %s: %s", f.Label(), res.Errors[f])); err != nil {
				return nil, err
			}
		}
	}
}

// askField asks one question, applies the answer as a change followed by a
// blur, and echoes the field's visible error.
func (s *Session) askField(ctx context.Context, f form.Field) error {
	current := s.form.State().Values

	var raw string
	switch f.Kind() {
	case form.KindPassword:
		v, err := s.driver.Password(ctx, InputConfig{Message: f.Label(), Help: f.Placeholder()})
		if err != nil {
			return err
		}
		raw = v
	case form.KindSelect:
		options := s.form.Countries()
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      f.Label(),
			Options:      options,
			DefaultIndex: indexOf(options, current.Text(f)),
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(options) {
			raw = options[idx]
		}
	case form.KindCheckbox:
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: f.Label(), Default: current.Checked(f)})
		if err != nil {
			return err
		}
		raw = strconv.FormatBool(ok)
	default:
		v, err := s.driver.Input(ctx, InputConfig{Message: f.Label(), Default: current.Text(f), Help: f.Placeholder()})
		if err != nil {
			return err
		}
		raw = v
	}

	s.form.Change(f, raw)
	s.form.Blur(f)
	if msg := s.form.State().Error(f); msg != "" {
		return s.driver.Info(ctx, "  ✗ "+msg)
	}
	return nil
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
