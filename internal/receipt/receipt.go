// Package receipt renders the acknowledgment shown after an accepted
// registration.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"text/template"
	"time"

	"github.com/smileynet/signup/internal/form"
)

// TemplateName is the acknowledgment template looked up in the renderer's FS.
const TemplateName = "acknowledgment.txt.tmpl"

// ErrTemplate is returned when the acknowledgment template cannot be loaded or executed.
var ErrTemplate = errors.New("receipt: template")

// Data is what the template sees. Passwords are not exposed.
type Data struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Country     string
	DOB         string
	SubmittedAt time.Time
}

// NewData builds template data from a submission.
func NewData(sub form.Submission) Data {
	v := sub.Values
	return Data{
		ID:          sub.ID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Email:       v.Email,
		Phone:       v.Phone,
		Country:     v.Country,
		DOB:         v.DOB,
		SubmittedAt: sub.SubmittedAt,
	}
}

// Renderer turns submissions into acknowledgment text.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses TemplateName from fsys.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	raw, err := fs.ReadFile(fsys, TemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrTemplate, TemplateName, err)
	}
	tmpl, err := template.New(TemplateName).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrTemplate, TemplateName, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template for sub.
func (r *Renderer) Render(sub form.Submission) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, NewData(sub)); err != nil {
		return "", fmt.Errorf("%w: executing %s: %w", ErrTemplate, TemplateName, err)
	}
	return buf.String(), nil
}
