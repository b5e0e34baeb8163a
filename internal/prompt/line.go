package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// LineDriver asks questions over plain line-oriented streams. It is used
// when stdin/stdout are not a terminal and in tests.
//
// Lines are read by a background goroutine so a blocked read still returns
// when the context is cancelled. The goroutine exits at end of input.
type LineDriver struct {
	in  *bufio.Scanner
	out io.Writer

	start   sync.Once
	lines   chan string
	readErr error // set before lines is closed
}

// NewLineDriver reads answers from r and writes questions to w.
func NewLineDriver(r io.Reader, w io.Writer) *LineDriver {
	return &LineDriver{in: bufio.NewScanner(r), out: w, lines: make(chan string)}
}

func (d *LineDriver) readLines() {
	defer close(d.lines)
	for d.in.Scan() {
		d.lines <- d.in.Text()
	}
	d.readErr = d.in.Err()
}

func (d *LineDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	suffix := ""
	if cfg.Default != "" {
		suffix = fmt.Sprintf(" [%s]", cfg.Default)
	}
	line, err := d.ask(ctx, cfg.Message+suffix)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return cfg.Default, nil
	}
	return line, nil
}

func (d *LineDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return d.ask(ctx, cfg.Message)
}

// Select accepts either the option number or its name, case-insensitively.
// A blank or unrecognised answer selects nothing.
func (d *LineDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	_, _ = fmt.Fprintf(d.out, "%s\n", cfg.Message)
	for i, opt := range cfg.Options {
		_, _ = fmt.Fprintf(d.out, "  %d) %s\n", i+1, opt)
	}
	line, err := d.ask(ctx, "Choice")
	if err != nil {
		return -1, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
			return cfg.DefaultIndex, nil
		}
		return -1, nil
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(cfg.Options) {
		return n - 1, nil
	}
	for i, opt := range cfg.Options {
		if strings.EqualFold(opt, line) {
			return i, nil
		}
	}
	return -1, nil
}

func (d *LineDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	hint := "[y/N]"
	if cfg.Default {
		hint = "[Y/n]"
	}
	line, err := d.ask(ctx, cfg.Message+" "+hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return cfg.Default, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (d *LineDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// ask prints label and reads one line as typed, without its line ending.
// End of input is ErrAborted; cancellation returns ctx.Err().
func (d *LineDriver) ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintf(d.out, "%s: ", label)
	d.start.Do(func() { go d.readLines() })

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(d.out)
		return "", ctx.Err()
	case line, ok := <-d.lines:
		if !ok {
			_, _ = fmt.Fprintln(d.out)
			if d.readErr != nil {
				return "", fmt.Errorf("prompt: reading input: %w", d.readErr)
			}
			return "", ErrAborted
		}
		return strings.TrimSuffix(line, "\r"), nil
	}
}
