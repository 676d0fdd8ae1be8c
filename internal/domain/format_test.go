package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{name: "both parts", first: "Jane", last: "Doe", want: "Jane Doe"},
		{name: "both empty", first: "", last: "", want: NoName},
		{name: "whitespace only", first: "  ", last: " ", want: NoName},
		{name: "first only", first: "Jane", last: "", want: "Jane"},
		{name: "last only", first: "", last: "Doe", want: "Doe"},
		{name: "untrimmed parts", first: " Jane ", last: " Doe ", want: "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FullName(tt.first, tt.last))
		})
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "local nine digits", in: "012345678", want: "(+855) 012-345-678"},
		{name: "with country code", in: "855012345678", want: "(+855) 012-345-678"},
		{name: "too short passes through", in: "12345", want: "12345"},
		{name: "formatted input renormalized", in: "012 345 678", want: "(+855) 012-345-678"},
		{name: "ten local digits keep remainder grouped last", in: "0123456789", want: "(+855) 012-345-6789"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{name: "zero is missing", price: 0, want: NoPrice},
		{name: "grouped thousands", price: 500000, want: "$500,000"},
		{name: "small whole amount", price: 950, want: "$950"},
		{name: "fractional keeps cents", price: 1234.5, want: "$1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}
