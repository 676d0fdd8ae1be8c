package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFullPass(t *testing.T) {
	f := New()
	f.Set("first_name", "")
	f.Set("email", "not-an-email")

	ok := f.Validate(
		Rule{"first_name", Required("First name is required")},
		Rule{"email", Email("Enter a valid email address")},
	)

	// Both problems surface in one pass.
	assert.False(t, ok)
	assert.Equal(t, "First name is required", f.Error("first_name"))
	assert.Equal(t, "Enter a valid email address", f.Error("email"))
}

func TestValidateKeepsFirstFailurePerField(t *testing.T) {
	f := New()
	f.Set("email", "")

	f.Validate(
		Rule{"email", Required("Email is required")},
		Rule{"email", Email("Enter a valid email address")},
	)

	assert.Equal(t, "Email is required", f.Error("email"))
}

func TestSetClearsOnlyThatFieldsError(t *testing.T) {
	f := New()
	f.Validate(
		Rule{"first_name", Required("First name is required")},
		Rule{"last_name", Required("Last name is required")},
	)
	require.Len(t, f.Errors, 2)

	f.Set("first_name", "Jane")

	assert.Empty(t, f.Error("first_name"))
	assert.Equal(t, "Last name is required", f.Error("last_name"))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"jane@example.com", true},
		{"jane@crm.example.kh", true},
		{"", true}, // optional unless Required
		{"jane", false},
		{"jane@", false},
		{"jane@example", false},
		{"jane doe@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			f := New()
			f.Set("email", tt.value)
			got := f.Validate(Rule{"email", Email("bad email")})
			assert.Equal(t, tt.valid, got)
		})
	}
}

func TestTimeAfter(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		valid bool
	}{
		{"end after start", "09:00", "10:00", true},
		{"one minute later", "10:00", "10:01", true},
		{"end before start", "10:00", "09:00", false},
		{"equal times invalid", "10:00", "10:00", false},
		{"missing start passes", "", "10:00", true},
		{"unparseable start passes", "soon", "10:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			f.Set("call_start_time", tt.start)
			f.Set("call_end_time", tt.end)
			got := f.Validate(Rule{"call_end_time", TimeAfter("call_start_time", "End time must be after start time")})
			assert.Equal(t, tt.valid, got)
			if !tt.valid {
				assert.Equal(t, "End time must be after start time", f.Error("call_end_time"))
			}
		})
	}
}

func TestPositive(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"95000", true},
		{"1234.5", true},
		{"", true},
		{"0", false},
		{"-5", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			f := New()
			f.Set("price", tt.value)
			assert.Equal(t, tt.valid, f.Validate(Rule{"price", Positive("bad price")}))
		})
	}
}

func TestFromURLValuesTrims(t *testing.T) {
	f := FromURLValues(url.Values{
		"first_name": {"  Jane "},
		"last_name":  {"Doe"},
	})

	assert.Equal(t, "Jane", f.Get("first_name"))
	assert.Equal(t, "Doe", f.Get("last_name"))
	assert.Empty(t, f.Get("missing"))
}
