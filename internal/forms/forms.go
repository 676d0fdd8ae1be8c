// Package forms validates submitted form values and carries them back
// to the template on re-render.
//
// Validation is a full pass: every rule runs on every Validate call and
// the result maps each failing field to one message, so a screen shows
// all problems at once instead of one per submit.
package forms

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// emailPattern is deliberately loose. The CRM re-validates addresses
// server side; this only catches obvious typos before a round trip.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const clockLayout = "15:04"

// Form holds submitted values and the field errors from the last
// Validate pass.
type Form struct {
	Values map[string]string
	Errors map[string]string
}

// New creates an empty form.
func New() *Form {
	return &Form{
		Values: make(map[string]string),
		Errors: make(map[string]string),
	}
}

// FromURLValues creates a form from parsed request values, trimming
// surrounding whitespace from each.
func FromURLValues(values url.Values) *Form {
	f := New()
	for key := range values {
		f.Values[key] = strings.TrimSpace(values.Get(key))
	}
	return f
}

// Get returns the value for field, empty when unset.
func (f *Form) Get(field string) string {
	return f.Values[field]
}

// Set replaces the value for field and clears that field's error. Other
// fields keep their errors until the next Validate pass.
func (f *Form) Set(field, value string) {
	f.Values[field] = strings.TrimSpace(value)
	delete(f.Errors, field)
}

// Valid reports whether the last Validate pass found no errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Error returns the message for field, empty when the field is fine.
func (f *Form) Error(field string) string {
	return f.Errors[field]
}

// =============================================================================
// Rules
// =============================================================================

// Check inspects one field and returns an error message, empty when the
// field passes.
type Check func(f *Form, field string) string

// Rule binds a check to a field.
type Rule struct {
	Field string
	Check Check
}

// Validate clears previous errors, runs every rule and reports whether
// all passed. A field keeps the message of its first failing rule.
func (f *Form) Validate(rules ...Rule) bool {
	f.Errors = make(map[string]string)
	for _, r := range rules {
		if _, seen := f.Errors[r.Field]; seen {
			continue
		}
		if msg := r.Check(f, r.Field); msg != "" {
			f.Errors[r.Field] = msg
		}
	}
	return f.Valid()
}

// Required fails when the field is empty.
func Required(msg string) Check {
	return func(f *Form, field string) string {
		if f.Get(field) == "" {
			return msg
		}
		return ""
	}
}

// Pattern fails when a non-empty field does not match re. Empty values
// pass; combine with Required when the field is mandatory.
func Pattern(re *regexp.Regexp, msg string) Check {
	return func(f *Form, field string) string {
		if v := f.Get(field); v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Email fails when a non-empty field is not a plausible address.
func Email(msg string) Check {
	return Pattern(emailPattern, msg)
}

// Positive fails when a non-empty field is not a number greater than
// zero.
func Positive(msg string) Check {
	return func(f *Form, field string) string {
		v := f.Get(field)
		if v == "" {
			return ""
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 {
			return msg
		}
		return ""
	}
}

// TimeAfter fails unless the field holds a clock time strictly after
// the one in startField. Equal times fail: a call or visit cannot end
// the minute it starts. When either field is empty or unparseable the
// check passes and leaves the complaint to Required.
func TimeAfter(startField, msg string) Check {
	return func(f *Form, field string) string {
		start, err1 := time.Parse(clockLayout, f.Get(startField))
		end, err2 := time.Parse(clockLayout, f.Get(field))
		if err1 != nil || err2 != nil {
			return ""
		}
		if !end.After(start) {
			return msg
		}
		return ""
	}
}
