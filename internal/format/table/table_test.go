package table

import "testing"

func TestFormatAlignsByDisplayWidth(t *testing.T) {
	rows := [][]string{
		{"alt+c", "Connect"},
		{"alt+1", "Monitor tab"},
		{"日本", "Wide"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft})
	want := []string{
		"alt+c  Connect",
		"alt+1  Monitor tab",
		"日本   Wide",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatRightAlignsAndHandlesRaggedRows(t *testing.T) {
	rows := [][]string{
		{"1", "a"},
		{"100"},
	}
	got := Format(rows, []Alignment{AlignRight})
	if got[0] != "  1  a" || got[1] != "100" {
		t.Fatalf("expected [\"  1  a\" \"100\"], got %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
