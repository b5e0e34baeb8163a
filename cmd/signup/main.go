package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/signup"
	"github.com/smileynet/signup/internal/config"
	"github.com/smileynet/signup/internal/form"
	"github.com/smileynet/signup/internal/prompt"
	"github.com/smileynet/signup/internal/receipt"
	"github.com/smileynet/signup/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errInvalid reports a submission that failed validation.
var errInvalid = errors.New("submission is invalid")

// CLI is the top-level command structure for signup.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Fill    FillCmd          `cmd:"" default:"withargs" help:"Open the registration form."`
	Check   CheckCmd         `cmd:"" help:"Validate a YAML submission without prompting."`
	Fields  FieldsCmd        `cmd:"" help:"List the form fields."`
}

// FillCmd opens the registration form in the selected UI mode.
type FillCmd struct {
	Mode string `help:"UI mode: auto, tui, prompt or plain. Overrides config." placeholder:"MODE"`
	Once bool   `help:"Exit after the first registered account."`
}

// CheckCmd validates a YAML document of field values.
type CheckCmd struct {
	File string `arg:"" help:"YAML file keyed by field name, or - for stdin."`
}

// FieldsCmd lists the form fields.
type FieldsCmd struct{}

// acknowledger renders the notice shown after an accepted submission.
type acknowledger func(form.Submission) (string, error)

// Run executes the fill command.
func (c *FillCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	if c.Mode != "" {
		cfg.UI.Mode = c.Mode
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	ack, err := newAcknowledger(cfg)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	f := form.New(form.WithCountries(cfg.Form.Countries))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := tui.IsTerminal(os.Stdin) && tui.IsTerminal(os.Stdout)
	switch resolveMode(cfg.UI.Mode, interactive) {
	case config.ModeTUI:
		opts := []tui.ModelOption{tui.WithAcknowledger(tui.Acknowledger(ack))}
		if c.Once {
			opts = append(opts, tui.WithSingleRun())
		}
		return runTUI(ctx, os.Stdout, os.Stderr, tui.NewModel(f, opts...), cfg.UI.AltScreen)
	case config.ModePrompt:
		d := prompt.NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr)
		return runSession(ctx, os.Stdout, prompt.NewSession(f, d, c.sessionOptions(ack)...))
	default:
		d := prompt.NewLineDriver(os.Stdin, os.Stdout)
		return runSession(ctx, os.Stdout, prompt.NewSession(f, d, c.sessionOptions(ack)...))
	}
}

func (c *FillCmd) sessionOptions(ack acknowledger) []prompt.SessionOption {
	opts := []prompt.SessionOption{prompt.WithAcknowledger(prompt.Acknowledger(ack))}
	if c.Once {
		opts = append(opts, prompt.WithSingleRun())
	}
	return opts
}

// resolveMode turns "auto" into a concrete mode: the TUI on a terminal,
// the plain line flow otherwise.
func resolveMode(mode string, interactive bool) string {
	if mode != config.ModeAuto {
		return mode
	}
	if interactive {
		return config.ModeTUI
	}
	return config.ModePlain
}

// newAcknowledger builds the success notice renderer from the embedded
// templates, overridden by files in the configured templates directory.
func newAcknowledger(cfg *config.Config) (acknowledger, error) {
	r, err := receipt.NewRenderer(signup.OverlayFS(cfg.UI.TemplatesDir, signup.Templates))
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// runSession runs a question-by-question session. Aborting is not an error.
func runSession(ctx context.Context, w io.Writer, s *prompt.Session) error {
	err := s.Run(ctx)
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "\nAborted.")
		return nil
	}
	return err
}

// runTUI runs the Bubble Tea form and prints a summary once it exits.
func runTUI(ctx context.Context, w, errW io.Writer, m tui.Model, altScreen bool) error {
	final, err := tui.Run(ctx, m, tui.ProgramOptions{AltScreen: altScreen})
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
		return err
	}
	if final.Err() != nil {
		fmt.Fprintf(errW, "warning: %s\n", final.Err())
	}
	if notice := final.Notice(); notice != "" {
		fmt.Fprintln(w, notice)
	}
	printSummary(w, final.Submissions())
	return nil
}

func printSummary(w io.Writer, subs []form.Submission) {
	switch len(subs) {
	case 0:
		fmt.Fprintln(w, "No accounts registered.")
	case 1:
		fmt.Fprintf(w, "Registered 1 account (reference %s).\n", subs[0].ID)
	default:
		fmt.Fprintf(w, "Registered %d accounts.\n", len(subs))
		for _, sub := range subs {
			fmt.Fprintf(w, "  %s  %s\n", sub.ID, sub.Values.Email)
		}
	}
}

// Run executes the check command.
func (c *CheckCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return c.run(os.Stdin, os.Stdout, form.NewValidator(cfg.Form.Countries))
}

// run validates the document against the countries offered by vd.
func (c *CheckCmd) run(stdin io.Reader, w io.Writer, vd form.Validator) error {
	values, err := readValues(c.File, stdin)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	errs := vd.ValidateAll(values)
	if len(errs) == 0 {
		fmt.Fprintln(w, "ok")
		return nil
	}
	for _, f := range errs.Fields() {
		fmt.Fprintf(w, "%s: %s\n", f, errs[f])
	}
	return errInvalid
}

// readValues decodes a YAML document of field values from path, or from
// stdin when path is "-". An empty document yields empty values.
func readValues(path string, stdin io.Reader) (form.Values, error) {
	var r io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return form.Values{}, err
		}
		defer file.Close()
		r = file
	}

	var values form.Values
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return form.Values{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return values, nil
}

// Run executes the fields command.
func (c *FieldsCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *FieldsCmd) run(w io.Writer) error {
	for _, f := range form.Fields() {
		fmt.Fprintf(w, "%-16s %-36s %s\n", f, f.Label(), f.Kind())
	}
	return nil
}

// loadConfig loads layered config from user and project paths, then the
// project .env file and the process environment.
func loadConfig() (*config.Config, error) {
	return loadConfigFrom(
		os.ExpandEnv("$HOME/.config/signup/config.yaml"),
		".signup/config.yaml",
		".env",
	)
}

func loadConfigFrom(userPath, projectPath, dotenvPath string) (*config.Config, error) {
	cfg, err := config.LoadLayered(userPath, projectPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyDotEnv(dotenvPath); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errInvalid) {
		return exitInvalid
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("signup"),
		kong.Description("Create an account from the terminal."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
