package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	in := ColorGreen + "A" + ColorReset
	if got := stripANSI(in); got != "A" {
		t.Errorf("stripANSI(%q) = %q, want %q", in, got, "A")
	}
	if got := stripANSI("plain"); got != "plain" {
		t.Errorf("stripANSI plain = %q", got)
	}
	if got := displayWidth(ColorBold + "ES" + ColorReset); got != 2 {
		t.Errorf("displayWidth = %d, want 2", got)
	}
}

func TestTableRender_ColoredCellsStayAligned(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{writer: &buf, colorEnabled: true}

	table := NewTable(out, "GRADE", "SYMBOL")
	table.AddRow(ColorGreen+"A"+ColorReset, "ES")
	table.AddRow("F", "NQ")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	// Escape codes carry no width, so every row's second column starts at
	// the same screen offset as the header's.
	headerCol := strings.Index(stripANSI(lines[0]), "SYMBOL")
	for _, line := range lines[2:] {
		plain := stripANSI(line)
		col := strings.IndexAny(plain[len("GRADE"):], "EN") // first rune of ES / NQ
		if col+len("GRADE") != headerCol {
			t.Errorf("misaligned row %q: column at %d, want %d", plain, col+len("GRADE"), headerCol)
		}
	}
}
