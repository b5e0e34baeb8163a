package form

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseField_RoundTrip(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		if err != nil {
			t.Fatalf("ParseField(%q) error = %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseField(%q) = %v, want %v", f.String(), got, f)
		}
	}
}

func TestParseField_Unknown(t *testing.T) {
	if _, err := ParseField("fristName"); err == nil {
		t.Fatal("ParseField(typo) should fail")
	}
}

func TestField_Metadata(t *testing.T) {
	tests := []struct {
		field Field
		label string
		kind  Kind
	}{
		{FirstName, "First Name", KindText},
		{Email, "Email", KindEmail},
		{Phone, "Phone", KindTel},
		{Country, "Country", KindSelect},
		{DOB, "Date of Birth", KindDate},
		{ConfirmPassword, "Confirm Password", KindPassword},
		{Terms, "I agree to the Terms & Conditions", KindCheckbox},
	}
	for _, tt := range tests {
		if got := tt.field.Label(); got != tt.label {
			t.Errorf("%s.Label() = %q, want %q", tt.field, got, tt.label)
		}
		if got := tt.field.Kind(); got != tt.kind {
			t.Errorf("%s.Kind() = %q, want %q", tt.field, got, tt.kind)
		}
	}
}

func TestField_InvalidString(t *testing.T) {
	if got := Field(-1).String(); got != "Field(-1)" {
		t.Errorf("String() = %q", got)
	}
	if Field(99).Valid() {
		t.Error("Field(99) should not be valid")
	}
}

func TestValues_YAMLKeys(t *testing.T) {
	var v Values
	doc := []byte("firstName: Ada\nconfirmPassword: secret\nterms: true\n")
	if err := yaml.Unmarshal(doc, &v); err != nil {
		t.Fatal(err)
	}
	if v.FirstName != "Ada" || v.ConfirmPassword != "secret" || !v.Terms {
		t.Errorf("decoded = %+v", v)
	}
}

func TestErrorMap_YAMLUsesWireNames(t *testing.T) {
	out, err := yaml.Marshal(ErrorMap{ConfirmPassword: "Passwords do not match"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(out), "confirmPassword: Passwords do not match\n"; got != want {
		t.Errorf("yaml = %q, want %q", got, want)
	}
}

func TestValues_WithAndText(t *testing.T) {
	var v Values
	for _, f := range Fields() {
		if f.Kind() == KindCheckbox {
			continue
		}
		v = v.With(f, "value-"+f.String())
		if got := v.Text(f); got != "value-"+f.String() {
			t.Errorf("Text(%s) = %q", f, got)
		}
	}
}

func TestParseChecked(t *testing.T) {
	for _, yes := range []string{"true", "YES", " y ", "1", "on", "x"} {
		if !ParseChecked(yes) {
			t.Errorf("ParseChecked(%q) = false, want true", yes)
		}
	}
	for _, no := range []string{"", "no", "false", "maybe"} {
		if ParseChecked(no) {
			t.Errorf("ParseChecked(%q) = true, want false", no)
		}
	}
}
