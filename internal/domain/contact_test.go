package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryContact(t *testing.T) {
	tests := []struct {
		name     string
		channels []ContactChannel
		want     string
	}{
		{
			name: "primary preferred over earlier values",
			channels: []ContactChannel{
				{Type: "phone", Values: []ContactValue{
					{Number: "010111222"},
					{Number: "012345678", IsPrimary: true},
				}},
			},
			want: "012345678",
		},
		{
			name: "primary with empty number is skipped",
			channels: []ContactChannel{
				{Type: "phone", Values: []ContactValue{
					{Number: "", IsPrimary: true},
					{Number: "010111222"},
				}},
			},
			want: "010111222",
		},
		{
			name: "falls back across channels",
			channels: []ContactChannel{
				{Type: "phone", Values: []ContactValue{{Number: ""}}},
				{Type: "telegram", Values: []ContactValue{{Number: "099887766"}}},
			},
			want: "099887766",
		},
		{
			name:     "no channels",
			channels: nil,
			want:     NoContact,
		},
		{
			name: "no usable numbers",
			channels: []ContactChannel{
				{Type: "phone", Values: []ContactValue{{Number: ""}, {Number: ""}}},
			},
			want: NoContact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryContact(tt.channels))
		})
	}
}

func TestValidateContactChannels(t *testing.T) {
	ok := []ContactChannel{
		{Type: "phone", Values: []ContactValue{
			{Number: "012345678", IsPrimary: true},
			{Number: "010111222"},
		}},
		{Type: "telegram", Values: []ContactValue{{Number: "099887766", IsPrimary: true}}},
	}
	assert.NoError(t, ValidateContactChannels("lead.validate", ok))

	dup := []ContactChannel{
		{Type: "phone", Values: []ContactValue{
			{Number: "012345678", IsPrimary: true},
			{Number: "010111222", IsPrimary: true},
		}},
	}
	err := ValidateContactChannels("lead.validate", dup)
	assert.Error(t, err)
	assert.Equal(t, EINVALID, ErrorCode(err))
}

func TestAddressDisplay(t *testing.T) {
	addr := Address{
		Province: &Place{ID: "12", Name: "Phnom Penh"},
		District: &Place{ID: "1201", Name: "Chamkar Mon"},
		Line1:    "St 271",
	}
	assert.Equal(t, "St 271, Chamkar Mon, Phnom Penh", addr.Display())

	assert.Equal(t, "", Address{}.Display())
}
