// Package numparse reads integers out of loosely formatted text.
package numparse

import (
	"strconv"
	"strings"
)

// LeadingInt parses the base-10 integer prefix of s after leading
// whitespace, with an optional sign. "05" is 5 and "3/4" is 3; a string
// without leading digits reports false.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
