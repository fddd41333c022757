package textio_test

import (
	"strings"
	"testing"

	"annconv/internal/textio"
)

func TestReadAllStripsBOM(t *testing.T) {
	got, err := textio.ReadAll(strings.NewReader("\uFEFFJohn ran.\n"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != "John ran.\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadAllLeavesPlainInputAlone(t *testing.T) {
	input := "no bom here\nsecond line\n"
	got, err := textio.ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != input {
		t.Fatalf("got %q, want %q", got, input)
	}
}

func TestReadAllOnlyStripsLeadingBOM(t *testing.T) {
	input := "a\uFEFFb"
	got, err := textio.ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != input {
		t.Fatalf("interior BOM must survive: got %q", got)
	}
}
