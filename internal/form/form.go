package form

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCountries are the selectable countries when none are configured.
var DefaultCountries = []string{"India", "USA", "UK"}

// Submission is the local acknowledgment of an accepted form.
type Submission struct {
	ID          string
	Values      Values
	SubmittedAt time.Time
}

// Option configures a Form.
type Option func(*Form)

// WithClock overrides the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithIDGenerator overrides how submission references are minted.
func WithIDGenerator(newID func() string) Option {
	return func(f *Form) {
		if newID != nil {
			f.newID = newID
		}
	}
}

// WithCountries sets the options offered by the country selector.
func WithCountries(countries []string) Option {
	return func(f *Form) {
		if len(countries) > 0 {
			f.validator = NewValidator(countries)
		}
	}
}

// Form owns the state of one registration form. It is not safe for
// concurrent use; renderers call it from their single event loop.
type Form struct {
	state     State
	validator Validator
	now       func() time.Time
	newID     func() string
}

// New creates an empty Form.
func New(opts ...Option) *Form {
	f := &Form{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.state = NewState(f.validator)
	return f
}

// State returns the current snapshot.
func (f *Form) State() State {
	return f.state
}

// Countries returns the selectable countries.
func (f *Form) Countries() []string {
	return f.validator.Countries()
}

// Dirty reports whether anything was entered since the last reset.
func (f *Form) Dirty() bool {
	return !f.state.Pristine()
}

// Change handles an input event for field.
func (f *Form) Change(field Field, raw string) {
	f.state = f.state.Change(field, raw)
}

// Toggle handles a checkbox click.
func (f *Form) Toggle(field Field) {
	f.state = f.state.Toggle(field)
}

// Blur handles focus leaving field.
func (f *Form) Blur(field Field) {
	f.state = f.state.Blur(field)
}

// Submit validates the whole form. When accepted the form resets and the
// returned Submission is non-nil.
func (f *Form) Submit() (*Submission, Result) {
	next, res := f.state.Submit()
	f.state = next
	if !res.Accepted {
		return nil, res
	}
	return &Submission{
		ID:          f.newID(),
		Values:      res.Values,
		SubmittedAt: f.now(),
	}, res
}
