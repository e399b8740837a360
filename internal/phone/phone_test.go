package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "national format", raw: "01711223344", want: "+8801711223344"},
		{name: "bare number", raw: "1711223344", want: "+8801711223344"},
		{name: "already international", raw: "+8801711223344", want: "+8801711223344"},
		{name: "spaces and dashes", raw: "017-112 233 44", want: "+8801711223344"},
		{name: "parentheses", raw: "(017) 11223344", want: "+8801711223344"},
		{name: "empty", raw: "", want: ""},
		{name: "only formatting", raw: " -() ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, ""))
		})
	}
}

func TestNormalizeFixedPoint(t *testing.T) {
	// Normalizing twice yields the same value as normalizing once.
	inputs := []string{"01711223344", "1711223344", "+8801711223344", "017 11-22-33-44"}
	for _, raw := range inputs {
		once := Normalize(raw, "")
		assert.Equal(t, once, Normalize(once, ""), "input %q", raw)
	}
}

func TestNormalizeCustomCountryCode(t *testing.T) {
	assert.Equal(t, "+91711223344", Normalize("0711223344", "+91"))
}
