package amino

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "three letter code", input: "ALA", want: "ALA", wantOK: true},
		{name: "one letter code", input: "K", want: "LYS", wantOK: true},
		{name: "lowercase", input: "glu", want: "GLU", wantOK: true},
		{name: "surrounding whitespace", input: " trp ", want: "TRP", wantOK: true},
		{name: "unknown code", input: "XYZ", wantOK: false},
		{name: "water is not an amino acid", input: "HOH", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Canonical(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, 20)
	for _, code := range codes {
		assert.True(t, IsValid(code), "vocabulary code %s should be valid", code)
	}
}
