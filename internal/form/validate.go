package form

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password, counted in runes.
const MinPasswordLength = 8

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// ErrorMap holds one message per failing field. A missing key or an empty
// message both mean the field is valid.
type ErrorMap map[Field]string

// Clone returns an independent copy of m.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for f, msg := range m {
		if msg != "" {
			out[f] = msg
		}
	}
	return out
}

// Fields returns the failing fields in display order.
func (m ErrorMap) Fields() []Field {
	var out []Field
	for _, f := range Fields() {
		if m[f] != "" {
			out = append(out, f)
		}
	}
	return out
}

// rule returns the message for f given the whole snapshot.
type rule func(v Values) string

var rules = [fieldCount]rule{
	FirstName: func(v Values) string {
		if strings.TrimSpace(v.FirstName) == "" {
			return "First name is required"
		}
		return ""
	},
	LastName: func(v Values) string {
		if strings.TrimSpace(v.LastName) == "" {
			return "Last name is required"
		}
		return ""
	},
	Email: func(v Values) string {
		if v.Email == "" {
			return "Email is required"
		}
		// RE2's \S only excludes ASCII whitespace.
		if strings.IndexFunc(v.Email, isSpace) >= 0 || !emailPattern.MatchString(v.Email) {
			return "Email address is invalid"
		}
		return ""
	},
	Phone: func(v Values) string {
		if v.Phone == "" {
			return "Phone number is required"
		}
		if !phonePattern.MatchString(v.Phone) {
			return "Phone must be 10 digits"
		}
		return ""
	},
	Country: func(v Values) string {
		if v.Country == "" {
			return "Please select a country"
		}
		return ""
	},
	DOB: func(v Values) string {
		if v.DOB == "" {
			return "Date of birth is required"
		}
		return ""
	},
	Password: func(v Values) string {
		if v.Password == "" {
			return "Password is required"
		}
		if utf8.RuneCountInString(v.Password) < MinPasswordLength {
			return fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
		}
		return ""
	},
	ConfirmPassword: func(v Values) string {
		if v.ConfirmPassword == "" {
			return "Confirm Password is required"
		}
		if v.ConfirmPassword != v.Password {
			return "Passwords do not match"
		}
		return ""
	},
	Terms: func(v Values) string {
		if !v.Terms {
			return "You must accept the terms"
		}
		return ""
	},
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Validator applies the rules with a fixed set of selectable countries.
// The zero Validator offers DefaultCountries.
type Validator struct {
	countries []string
}

// NewValidator returns a Validator that accepts only the given countries.
// An empty list falls back to DefaultCountries.
func NewValidator(countries []string) Validator {
	return Validator{countries: slices.Clone(countries)}
}

// Countries returns the selectable countries in display order.
func (vd Validator) Countries() []string {
	if len(vd.countries) == 0 {
		return slices.Clone(DefaultCountries)
	}
	return slices.Clone(vd.countries)
}

// Validate returns the message for field f against snapshot, or "" when the
// value is acceptable. Unknown fields never pass.
func (vd Validator) Validate(f Field, snapshot Values) string {
	if !f.Valid() || rules[f] == nil {
		return fmt.Sprintf("Unknown field %s", f)
	}
	if msg := rules[f](snapshot); msg != "" {
		return msg
	}
	if f == Country && !vd.offers(snapshot.Country) {
		return rules[Country](Values{})
	}
	return ""
}

// ValidateAll runs every rule regardless of touched state and keeps only
// the failures. The form is valid iff the result is empty.
func (vd Validator) ValidateAll(snapshot Values) ErrorMap {
	errs := make(ErrorMap)
	for _, f := range Fields() {
		if msg := vd.Validate(f, snapshot); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

func (vd Validator) offers(country string) bool {
	if len(vd.countries) == 0 {
		return slices.Contains(DefaultCountries, country)
	}
	return slices.Contains(vd.countries, country)
}

// Validate checks f against snapshot with the default countries.
func Validate(f Field, snapshot Values) string {
	return Validator{}.Validate(f, snapshot)
}

// ValidateAll checks every field against snapshot with the default countries.
func ValidateAll(snapshot Values) ErrorMap {
	return Validator{}.ValidateAll(snapshot)
}
