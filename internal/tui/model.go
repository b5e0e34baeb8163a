// Package tui renders the registration form as a Bubble Tea program.
// Every edit is forwarded to the form as a change event and every focus
// move away from a field as a blur event.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/signup/internal/form"
)

// Acknowledger renders the notice shown after an accepted submission.
type Acknowledger func(form.Submission) (string, error)

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// WithAcknowledger overrides the success notice.
func WithAcknowledger(ack Acknowledger) ModelOption {
	return func(m *Model) {
		if ack != nil {
			m.ack = ack
		}
	}
}

// WithSingleRun quits the program after the first accepted submission.
func WithSingleRun() ModelOption {
	return func(m *Model) {
		m.once = true
	}
}

// SubmittedMsg is emitted after an accepted submission.
type SubmittedMsg struct {
	Submission form.Submission
}

// Model is the Bubble Tea model for the registration form.
type Model struct {
	form   *form.Form
	fields []form.Field
	inputs []textinput.Model // one slot per field; unused for select/checkbox
	focus  int               // index into fields; len(fields) is the button
	keys   formKeys
	help   help.Model
	ack    Acknowledger

	notice    string
	err       error
	submitted []form.Submission
	width     int
	quitting  bool
	once      bool
}

// NewModel creates a Model over f with focus on the first field.
func NewModel(f *form.Form, opts ...ModelOption) Model {
	fields := form.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		if !isTextField(field) {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.Placeholder()
		ti.PlaceholderStyle = placeholderStyle
		ti.Width = 40
		if field.Kind() == form.KindPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if field.Kind() == form.KindTel {
			ti.CharLimit = 20
		}
		inputs[i] = ti
	}

	m := Model{
		form:   f,
		fields: fields,
		inputs: inputs,
		keys:   FormKeyMap(),
		help:   help.New(),
		ack:    defaultAcknowledger,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.inputs[0].Focus()
	return m
}

func defaultAcknowledger(sub form.Submission) (string, error) {
	return fmt.Sprintf("Account Created Successfully ✅\nReference: %s", sub.ID), nil
}

func isTextField(f form.Field) bool {
	switch f.Kind() {
	case form.KindSelect, form.KindCheckbox:
		return false
	}
	return true
}

// Init starts the cursor blink of the focused input.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SubmittedMsg:
		if m.once {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// handleKey routes key presses: navigation and submit first, then
// field-specific keys, then plain typing into the focused input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Enter):
		if m.onButton() {
			return m.submit()
		}
		return m.moveFocus(1)
	}

	if m.onButton() {
		return m, nil
	}
	field := m.fields[m.focus]
	switch field.Kind() {
	case form.KindCheckbox:
		if key.Matches(msg, m.keys.Toggle) {
			m.clearNotice()
			m.form.Toggle(field)
		}
		return m, nil
	case form.KindSelect:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cycleCountry(-1)
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			m.cycleCountry(1)
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards msg to the focused text input and reports a change
// event when its value moved.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.onButton() || !isTextField(m.fields[m.focus]) {
		return m, nil
	}
	field := m.fields[m.focus]
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if after := m.inputs[m.focus].Value(); after != before {
		m.clearNotice()
		m.form.Change(field, after)
	}
	return m, cmd
}

// cycleCountry steps through the placeholder and the configured countries.
func (m *Model) cycleCountry(delta int) {
	countries := m.form.Countries()
	n := len(countries) + 1
	idx := (m.countryIndex() + delta + n) % n
	value := ""
	if idx > 0 {
		value = countries[idx-1]
	}
	m.clearNotice()
	m.form.Change(form.Country, value)
}

// clearNotice drops the acknowledgment and any error from rendering it.
func (m *Model) clearNotice() {
	m.notice = ""
	m.err = nil
}

// countryIndex returns 0 for the placeholder or 1+position of the selection.
func (m Model) countryIndex() int {
	current := m.form.State().Values.Country
	for i, c := range m.form.Countries() {
		if c == current {
			return i + 1
		}
	}
	return 0
}

// moveFocus blurs the focused field and focuses the one delta steps away.
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if !m.onButton() {
		m.form.Blur(m.fields[m.focus])
	}
	n := len(m.fields) + 1
	return m.focusAt((m.focus + delta + n) % n)
}

func (m Model) focusAt(idx int) (tea.Model, tea.Cmd) {
	if !m.onButton() && isTextField(m.fields[m.focus]) {
		m.inputs[m.focus].Blur()
	}
	m.focus = idx
	if !m.onButton() && isTextField(m.fields[m.focus]) {
		return m, m.inputs[m.focus].Focus()
	}
	return m, nil
}

// submit runs whole-form validation. Success resets every input and shows
// the acknowledgment; failure focuses the first invalid field.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, res := m.form.Submit()
	if !res.Accepted {
		m.clearNotice()
		return m.focusAt(m.indexOf(res.Errors.Fields()[0]))
	}

	m.submitted = append(m.submitted, *sub)
	m.notice, m.err = m.ack(*sub)
	m.syncInputs()
	next, cmd := m.focusAt(0)
	return next, tea.Batch(cmd, func() tea.Msg { return SubmittedMsg{Submission: *sub} })
}

// syncInputs copies form values into the text inputs.
func (m *Model) syncInputs() {
	values := m.form.State().Values
	for i, f := range m.fields {
		if isTextField(f) {
			m.inputs[i].SetValue(values.Text(f))
		}
	}
}

func (m Model) indexOf(f form.Field) int {
	for i, field := range m.fields {
		if field == f {
			return i
		}
	}
	return 0
}

func (m Model) onButton() bool {
	return m.focus >= len(m.fields)
}

// Submissions returns every accepted submission in order.
func (m Model) Submissions() []form.Submission {
	return append([]form.Submission(nil), m.submitted...)
}

// Notice returns the acknowledgment currently shown, if any.
func (m Model) Notice() string {
	return m.notice
}

// Err returns the last acknowledgment rendering error, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Account"))
	b.WriteString("\n\n")

	state := m.form.State()
	for i, f := range m.fields {
		focused := i == m.focus
		b.WriteString(m.viewField(i, f, focused, state))
		if msg := state.Error(f); msg != "" {
			fmt.Fprintf(&b, "    %s\n", errorStyle.Render("✗ "+msg))
		}
		b.WriteString("\n")
	}

	b.WriteString(ButtonStyle(m.onButton()).Render("Register"))
	b.WriteString("\n")

	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", errorStyle.Render("Error: "+m.err.Error()))
	} else if m.notice != "" {
		fmt.Fprintf(&b, "\n%s\n", NoticeBox().Render(noticeStyle.Render(m.notice)))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewField(i int, f form.Field, focused bool, state form.State) string {
	marker := "  "
	label := labelStyle
	if focused {
		marker = "› "
		label = focusedLabelStyle
	}

	switch f.Kind() {
	case form.KindCheckbox:
		box := "[ ]"
		if state.Values.Checked(f) {
			box = "[x]"
		}
		return fmt.Sprintf("%s%s %s\n", marker, box, label.Render(f.Label()))
	case form.KindSelect:
		choice := placeholderStyle.Render(f.Placeholder())
		if v := state.Values.Text(f); v != "" {
			choice = v
		}
		return fmt.Sprintf("%s%s\n    ‹ %s ›\n", marker, label.Render(f.Label()), choice)
	default:
		return fmt.Sprintf("%s%s\n    %s\n", marker, label.Render(f.Label()), m.inputs[i].View())
	}
}
