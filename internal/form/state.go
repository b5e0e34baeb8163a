package form

// FieldState is the per-field position in the touched/error state machine.
type FieldState string

const (
	Untouched      FieldState = "untouched"
	TouchedValid   FieldState = "touched-valid"
	TouchedInvalid FieldState = "touched-invalid"
)

// TouchedSet records which fields were blurred or covered by a submit.
type TouchedSet map[Field]bool

// Clone returns an independent copy of t.
func (t TouchedSet) Clone() TouchedSet {
	out := make(TouchedSet, len(t))
	for f, ok := range t {
		if ok {
			out[f] = true
		}
	}
	return out
}

// State is the whole form: values, derived errors and touched fields.
// Transitions return a new State and never mutate the receiver's maps.
// The zero State is the initial form with the default countries.
type State struct {
	Values  Values
	Errors  ErrorMap
	Touched TouchedSet

	validator Validator
}

// NewState returns an initial State validated by vd.
func NewState(vd Validator) State {
	return State{validator: vd}
}

// Result describes the outcome of a submit attempt.
type Result struct {
	Accepted bool
	// Values holds what was submitted, before any reset.
	Values Values
	// Errors is the whole-form validation result; empty when accepted.
	Errors ErrorMap
}

// Change stores raw for f. A touched field is revalidated immediately;
// an untouched field keeps no error until it is blurred.
func (s State) Change(f Field, raw string) State {
	next := s.clone()
	next.Values = s.Values.With(f, raw)
	if next.Touched[f] {
		next.setError(f, s.validator.Validate(f, next.Values))
	}
	return next
}

// Toggle flips a checkbox field and then behaves like Change. Other kinds
// are left untouched.
func (s State) Toggle(f Field) State {
	if f.Kind() != KindCheckbox {
		return s
	}
	if s.Values.Checked(f) {
		return s.Change(f, "false")
	}
	return s.Change(f, "true")
}

// Blur marks f touched and records its current error.
func (s State) Blur(f Field) State {
	if !f.Valid() {
		return s
	}
	next := s.clone()
	next.Touched[f] = true
	next.setError(f, s.validator.Validate(f, next.Values))
	return next
}

// Submit touches every field and validates the whole form. An accepted
// submit returns the initial State; a rejected one keeps the values and
// exposes every failure.
func (s State) Submit() (State, Result) {
	errs := s.validator.ValidateAll(s.Values)
	if len(errs) == 0 {
		return NewState(s.validator), Result{Accepted: true, Values: s.Values, Errors: ErrorMap{}}
	}

	touched := make(TouchedSet, fieldCount)
	for _, f := range Fields() {
		touched[f] = true
	}
	next := State{Values: s.Values, Errors: errs, Touched: touched, validator: s.validator}
	return next, Result{Values: s.Values, Errors: errs.Clone()}
}

// Error returns the message a renderer should show next to f. It is empty
// for untouched fields.
func (s State) Error(f Field) string {
	if !s.Touched[f] {
		return ""
	}
	return s.Errors[f]
}

// FieldState reports where f sits in the state machine.
func (s State) FieldState(f Field) FieldState {
	switch {
	case !s.Touched[f]:
		return Untouched
	case s.Errors[f] != "":
		return TouchedInvalid
	default:
		return TouchedValid
	}
}

// Pristine reports whether s equals the initial form.
func (s State) Pristine() bool {
	return s.Values == (Values{}) && len(s.Errors) == 0 && len(s.Touched) == 0
}

func (s State) clone() State {
	return State{Values: s.Values, Errors: s.Errors.Clone(), Touched: s.Touched.Clone(), validator: s.validator}
}

func (s *State) setError(f Field, msg string) {
	if msg == "" {
		delete(s.Errors, f)
		return
	}
	s.Errors[f] = msg
}
