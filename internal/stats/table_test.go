package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "Mean", "Casts"}
	rows := [][]string{
		{"05/01/2024", "120.5m", "12"},
		{"06/01/2024", "98.0m", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date         Mean Casts" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "05/01/2024 120.5m    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "06/01/2024  98.0m     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}
