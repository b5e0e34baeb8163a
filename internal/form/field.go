// Package form holds the registration form core: the closed set of fields,
// the validation rules, and the touched/error state machine that decides
// when a message becomes visible. Renderers drive it through Form.
package form

import "fmt"

// Field identifies one input of the registration form.
type Field int

// Fields in display order.
const (
	FirstName Field = iota
	LastName
	Email
	Phone
	Country
	DOB
	Password
	ConfirmPassword
	Terms

	fieldCount int = iota
)

// Kind describes how a renderer should present a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindSelect   Kind = "select"
	KindDate     Kind = "date"
	KindPassword Kind = "password"
	KindCheckbox Kind = "checkbox"
)

type fieldMeta struct {
	name        string
	label       string
	placeholder string
	kind        Kind
}

var meta = [fieldCount]fieldMeta{
	FirstName:       {name: "firstName", label: "First Name", placeholder: "Enter first name", kind: KindText},
	LastName:        {name: "lastName", label: "Last Name", placeholder: "Enter last name", kind: KindText},
	Email:           {name: "email", label: "Email", placeholder: "Enter email", kind: KindEmail},
	Phone:           {name: "phone", label: "Phone", placeholder: "Enter phone", kind: KindTel},
	Country:         {name: "country", label: "Country", placeholder: "Select…", kind: KindSelect},
	DOB:             {name: "dob", label: "Date of Birth", placeholder: "YYYY-MM-DD", kind: KindDate},
	Password:        {name: "password", label: "Password", placeholder: "Enter password", kind: KindPassword},
	ConfirmPassword: {name: "confirmPassword", label: "Confirm Password", placeholder: "Re-enter password", kind: KindPassword},
	Terms:           {name: "terms", label: "I agree to the Terms & Conditions", kind: KindCheckbox},
}

// Fields returns every field in display order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < fieldCount
}

// String returns the wire name used in YAML documents and error output.
func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return meta[f].name
}

// Label returns the human-readable label.
func (f Field) Label() string {
	if !f.Valid() {
		return f.String()
	}
	return meta[f].label
}

// Placeholder returns the hint shown in an empty input.
func (f Field) Placeholder() string {
	if !f.Valid() {
		return ""
	}
	return meta[f].placeholder
}

// Kind returns the input kind.
func (f Field) Kind() Kind {
	if !f.Valid() {
		return ""
	}
	return meta[f].kind
}

// ParseField maps a wire name back to its Field.
func ParseField(name string) (Field, error) {
	for i := range meta {
		if meta[i].name == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("form: unknown field %q", name)
}

// MarshalText implements encoding.TextMarshaler so Field works as a map key
// in YAML and JSON output.
func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("form: invalid field %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
