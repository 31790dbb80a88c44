package table

import (
	"bytes"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Passaporto", "Italy"},
		{"Giorni", "120"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Passaporto  Italy",
		"Giorni        120",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatPadsShortRowsAndIgnoresEscapes(t *testing.T) {
	rows := [][]string{
		{"\x1b[31mab\x1b[0m", "x"},
		{"abcd"},
	}
	got := Format(rows, nil)
	if got[0] != "\x1b[31mab\x1b[0m    x" {
		t.Fatalf("unexpected styled row %q", got[0])
	}
	if got[1] != "abcd" {
		t.Fatalf("unexpected short row %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, [][]string{{"a", "b"}, {"cc", "d"}}, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "a   b\ncc  d\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
