package testutil

import (
	"strings"
	"testing"
)

// AssertContains fails unless some line of lines contains want.
func AssertContains(t *testing.T, lines []string, want string) {
	t.Helper()
	for _, line := range lines {
		if strings.Contains(line, want) {
			return
		}
	}
	t.Fatalf("expected a line containing %q, got:\n%s", want, strings.Join(lines, "\n"))
}

// AssertNotContains fails if any line contains unwanted.
func AssertNotContains(t *testing.T, lines []string, unwanted string) {
	t.Helper()
	for _, line := range lines {
		if strings.Contains(line, unwanted) {
			t.Fatalf("expected no line containing %q, got:\n%s", unwanted, strings.Join(lines, "\n"))
		}
	}
}

// AssertLines compares lines after trimming trailing spaces.
func AssertLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(got), strings.Join(got, "\n"))
	}
	for i := range want {
		if g := strings.TrimRight(got[i], " "); g != want[i] {
			t.Fatalf("line %d mismatch\nexpected: %q\nactual:   %q", i, want[i], g)
		}
	}
}
