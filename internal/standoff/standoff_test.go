package standoff_test

import (
	"errors"
	"strings"
	"testing"

	"annconv/internal/logging"
	"annconv/internal/standoff"
)

func parse(t *testing.T, input string, opts standoff.ParseOptions) []standoff.Textbound {
	t.Helper()
	tbs, err := standoff.Parse(strings.NewReader(input), opts, logging.NewNop())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tbs
}

func TestParseTextbounds(t *testing.T) {
	input := "T1\tPERSON 0 4\tJohn\n" +
		"R1\tCoref Arg1:T1 Arg2:T2\n" +
		"T2\tCITY 13 19\tLondon\n"

	tbs := parse(t, input, standoff.ParseOptions{})
	if len(tbs) != 2 {
		t.Fatalf("expected 2 textbounds, got %d", len(tbs))
	}
	want := standoff.Textbound{ID: "T1", Start: 0, End: 4, Type: "PERSON", Text: "John"}
	if tbs[0] != want {
		t.Fatalf("textbound[0] = %+v, want %+v", tbs[0], want)
	}
	if tbs[1].Type != "CITY" || tbs[1].Start != 13 || tbs[1].End != 19 {
		t.Fatalf("textbound[1] = %+v", tbs[1])
	}
}

func TestParseAppendsAttributesInCanonicalOrder(t *testing.T) {
	input := "T1\tPERSON 0 4\tJohn\n" +
		"A2\tSpeculated T1\n" +
		"A1\tNegated T1\n"

	tbs := parse(t, input, standoff.ParseOptions{AppendAttributes: true})
	if len(tbs) != 1 {
		t.Fatalf("expected 1 textbound, got %d", len(tbs))
	}
	// Attributes sort by (entity id, attribute value); both belong to T1 so
	// Negated precedes Speculated.
	if tbs[0].Type != "PERSON-Negated-Speculated" {
		t.Fatalf("composite type = %q", tbs[0].Type)
	}
}

func TestParseIgnoresAttributesWhenDisabled(t *testing.T) {
	input := "T1\tPERSON 0 4\tJohn\nA1\tNegated T1\n"
	tbs := parse(t, input, standoff.ParseOptions{})
	if tbs[0].Type != "PERSON" {
		t.Fatalf("type = %q, want PERSON", tbs[0].Type)
	}
}

func TestParseRejectsMalformedTextbounds(t *testing.T) {
	// Missing text field, extra field, non-integer offsets, missing offset.
	cases := []string{
		"T1\tPERSON 0 4",
		"T1\tPERSON 0 4\tJohn\textra",
		"T1\tPERSON zero 4\tJohn",
		"T1\tPERSON 0 four\tJohn",
		"T1\tPERSON 0\tJohn",
	}
	for _, input := range cases {
		_, err := standoff.Parse(strings.NewReader(input+"\n"), standoff.ParseOptions{}, logging.NewNop())
		if !errors.Is(err, standoff.ErrFormat) {
			t.Errorf("Parse(%q): expected ErrFormat, got %v", input, err)
		}
	}
}

func TestResolveOverlapsEliminatesShorter(t *testing.T) {
	// Spans of length 7 and 6 overlapping in [4, 7).
	tbs := []standoff.Textbound{
		{ID: "T1", Start: 0, End: 7, Type: "A", Text: "abcdefg"},
		{ID: "T2", Start: 4, End: 10, Type: "B", Text: "efghij"},
	}
	kept := standoff.ResolveOverlaps(tbs, logging.NewNop())
	if len(kept) != 1 || kept[0].ID != "T1" {
		t.Fatalf("kept = %+v, want only T1", kept)
	}
}

func TestResolveOverlapsTieBreakIsDeterministic(t *testing.T) {
	a := standoff.Textbound{ID: "T1", Start: 2, End: 6, Type: "A"}
	b := standoff.Textbound{ID: "T2", Start: 4, End: 8, Type: "B"}

	// Equal length: the later-starting span loses, regardless of order.
	for _, input := range [][]standoff.Textbound{{a, b}, {b, a}} {
		kept := standoff.ResolveOverlaps(input, logging.NewNop())
		if len(kept) != 1 || kept[0].ID != "T1" {
			t.Fatalf("kept = %+v, want only T1", kept)
		}
	}
}

func TestResolveOverlapsWarnsPerEliminationPair(t *testing.T) {
	// T2 is overlapped by two longer spans; each pair reports its own
	// elimination decision.
	tbs := []standoff.Textbound{
		{ID: "T1", Start: 0, End: 10, Type: "A"},
		{ID: "T2", Start: 3, End: 6, Type: "B"},
		{ID: "T3", Start: 2, End: 9, Type: "C"},
	}
	logger, counter := logging.NewCounter(logging.NewNop())
	kept := standoff.ResolveOverlaps(tbs, logger)

	if len(kept) != 1 || kept[0].ID != "T1" {
		t.Fatalf("kept = %+v, want only T1", kept)
	}
	// T1/T2, T1/T3, and T2/T3 all overlap.
	if counter.Warnings() != 3 {
		t.Fatalf("warnings = %d, want 3", counter.Warnings())
	}
}

func TestResolveOverlapsOutputIsDisjointSubset(t *testing.T) {
	tbs := []standoff.Textbound{
		{ID: "T1", Start: 0, End: 10, Type: "A"},
		{ID: "T2", Start: 3, End: 6, Type: "B"},
		{ID: "T3", Start: 8, End: 14, Type: "C"},
		{ID: "T4", Start: 20, End: 24, Type: "D"},
	}
	kept := standoff.ResolveOverlaps(tbs, logging.NewNop())

	ids := make(map[string]bool, len(tbs))
	for _, tb := range tbs {
		ids[tb.ID] = true
	}
	for i, a := range kept {
		if !ids[a.ID] {
			t.Fatalf("output span %v not in input", a)
		}
		for _, b := range kept[i+1:] {
			if a.Overlaps(b) {
				t.Fatalf("residual overlap between %v and %v", a, b)
			}
		}
	}
	if len(kept) != 2 || kept[0].ID != "T1" || kept[1].ID != "T4" {
		t.Fatalf("kept = %+v", kept)
	}
}

func TestFormatRecord(t *testing.T) {
	line, err := standoff.FormatRecord(3, "NN", 10, 14, "word")
	if err != nil {
		t.Fatalf("FormatRecord: %v", err)
	}
	if line != "T3\tNN 10 14\tword" {
		t.Fatalf("line = %q", line)
	}

	if _, err := standoff.FormatRecord(1, "NN", 0, 5, "bad\ntext"); !errors.Is(err, standoff.ErrFormat) {
		t.Fatalf("expected ErrFormat for newline, got %v", err)
	}
	if _, err := standoff.FormatRecord(1, "NN", 0, 5, " padded"); !errors.Is(err, standoff.ErrFormat) {
		t.Fatalf("expected ErrFormat for padding, got %v", err)
	}
}
