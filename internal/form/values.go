package form

import (
	"strconv"
	"strings"
)

// Values is a snapshot of every field. The zero value is the empty form.
type Values struct {
	FirstName       string `yaml:"firstName" json:"firstName"`
	LastName        string `yaml:"lastName" json:"lastName"`
	Email           string `yaml:"email" json:"email"`
	Phone           string `yaml:"phone" json:"phone"`
	Country         string `yaml:"country" json:"country"`
	DOB             string `yaml:"dob" json:"dob"`
	Password        string `yaml:"password" json:"password"`
	ConfirmPassword string `yaml:"confirmPassword" json:"confirmPassword"`
	Terms           bool   `yaml:"terms" json:"terms"`
}

// Text returns the value of f as a string. Checkbox fields render as
// "true" or "false".
func (v Values) Text(f Field) string {
	switch f {
	case FirstName:
		return v.FirstName
	case LastName:
		return v.LastName
	case Email:
		return v.Email
	case Phone:
		return v.Phone
	case Country:
		return v.Country
	case DOB:
		return v.DOB
	case Password:
		return v.Password
	case ConfirmPassword:
		return v.ConfirmPassword
	case Terms:
		return strconv.FormatBool(v.Terms)
	}
	return ""
}

// Checked returns the value of a checkbox field; false for anything else.
func (v Values) Checked(f Field) bool {
	return f == Terms && v.Terms
}

// With returns a copy of v with f set to raw. Checkbox fields interpret raw
// as a yes/no answer (see ParseChecked).
func (v Values) With(f Field, raw string) Values {
	switch f {
	case FirstName:
		v.FirstName = raw
	case LastName:
		v.LastName = raw
	case Email:
		v.Email = raw
	case Phone:
		v.Phone = raw
	case Country:
		v.Country = raw
	case DOB:
		v.DOB = raw
	case Password:
		v.Password = raw
	case ConfirmPassword:
		v.ConfirmPassword = raw
	case Terms:
		v.Terms = ParseChecked(raw)
	}
	return v
}

// ParseChecked reads a checkbox answer. Anything other than an explicit
// yes is treated as unchecked.
func ParseChecked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1", "on", "x":
		return true
	}
	return false
}
