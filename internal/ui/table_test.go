package ui

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("COLUMN", "FIELD", "QUERY")
	tbl.AddRow("demographics", "sex", "Male")
	tbl.AddRow("diagnosis", "condition", "Flu")

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	// Columns align: "FIELD" and "sex" start at the same offset.
	if strings.Index(lines[0], "FIELD") != strings.Index(lines[1], "sex") {
		t.Errorf("columns not aligned:\n%s", out)
	}
	// Last column is not padded.
	if strings.HasSuffix(lines[1], " ") {
		t.Errorf("trailing padding on last column: %q", lines[1])
	}
}

func TestTable_Empty(t *testing.T) {
	if out := NewTable(2).String(); out != "" {
		t.Errorf("empty table should render empty, got %q", out)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "episode", "episodes"); got != "(1 episode)" {
		t.Errorf("got %q", got)
	}
	if got := Count(3, "episode", "episodes"); got != "(3 episodes)" {
		t.Errorf("got %q", got)
	}
}
