package main

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Collection", "Images"},
		[][]string{{"finished", "7"}, {"sketchbook", "12"}},
		1,
	)
	if !strings.Contains(out, "Collection") || !strings.Contains(out, "Images") {
		t.Fatalf("missing headers: %q", out)
	}
	for _, cell := range []string{"finished", "7", "sketchbook", "12"} {
		if !strings.Contains(out, cell) {
			t.Fatalf("missing cell %q: %q", cell, out)
		}
	}
	if len(strings.Split(out, "\n")) < 4 {
		t.Fatalf("expected bordered multi-line table: %q", out)
	}
}

func TestRenderTableNoHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"x"}}); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
