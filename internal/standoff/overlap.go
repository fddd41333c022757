package standoff

import (
	"log/slog"

	"annconv/internal/logging"
)

// ResolveOverlaps returns the subset of textbounds with all pairwise overlaps
// removed, preserving input order. For every overlapping pair the shorter
// span is eliminated; on equal length the span with the larger start offset
// loses, and on identical extents the later one in input order loses, so the
// outcome never depends on iteration order and exactly one member of each
// pair is marked.
//
// The pairwise scan is quadratic in the number of spans. This is an offline
// batch tool; revisit with an interval tree only if this ever sits on a
// latency-sensitive path.
func ResolveOverlaps(textbounds []Textbound, logger *slog.Logger) []Textbound {
	if logger == nil {
		logger = logging.NewNop()
	}

	eliminated := make([]bool, len(textbounds))
	for i := range textbounds {
		for j := i + 1; j < len(textbounds); j++ {
			if !textbounds[i].Overlaps(textbounds[j]) {
				continue
			}
			loser, winner := i, j
			if keepFirst(textbounds[i], textbounds[j]) {
				loser, winner = j, i
			}
			// One warning per pair, so a span overlapped by several
			// longer spans is reported against each of them.
			logger.Warn("eliminating overlapping annotation",
				logging.String("eliminated", textbounds[loser].String()),
				logging.String("overlaps_with", textbounds[winner].String()))
			eliminated[loser] = true
		}
	}

	kept := make([]Textbound, 0, len(textbounds))
	for i, tb := range textbounds {
		if !eliminated[i] {
			kept = append(kept, tb)
		}
	}
	return kept
}

// keepFirst decides which member of an overlapping pair survives: the longer
// span, then the one starting earlier, then the earlier one in input order.
func keepFirst(a, b Textbound) bool {
	if a.Length() != b.Length() {
		return a.Length() > b.Length()
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return true
}
