package numparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{"05", 5, true},
		{"12abc", 12, true},
		{"3/4", 3, true},
		{" 7", 7, true},
		{"-2", -2, true},
		{"+9", 9, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := LeadingInt(tt.in)
		assert.Equal(t, tt.ok, ok, "%q", tt.in)
		assert.Equal(t, tt.want, got, "%q", tt.in)
	}
}
