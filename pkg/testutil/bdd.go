package testutil

import "testing"

// step runs fn as a subtest named "<keyword> <desc>".
func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(keyword+" "+desc, fn)
}

// Given opens a scenario with its precondition.
func Given(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "Given", desc, fn)
}

// When names the action under test.
func When(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "When", desc, fn)
}

// Then holds the assertions for the enclosing When.
func Then(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "Then", desc, fn)
}

// And continues the previous step.
func And(t *testing.T, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return step(t, "And", desc, fn)
}
