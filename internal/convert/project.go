package convert

import (
	"log/slog"

	"annconv/internal/conll"
	"annconv/internal/logging"
	"annconv/internal/standoff"
)

// ProjectLabels assigns BIO tags to the tokens in sentences from the given
// non-overlapping span set, in place. The previous-label state resets at
// every sentence boundary, so an annotation can never continue across
// sentences as I-.
//
// Spans are expected to come out of standoff.ResolveOverlaps; a doubly
// claimed offset is reported but the later claim wins, matching the
// order-independent resolution already applied.
func ProjectLabels(sentences []conll.Sentence, spans []standoff.Textbound, logger *slog.Logger) {
	if logger == nil {
		logger = logging.NewNop()
	}

	claims := make(map[int]standoff.Textbound)
	for _, span := range spans {
		for offset := span.Start; offset < span.End; offset++ {
			if prev, claimed := claims[offset]; claimed {
				logger.Warn("overlapping annotations claim the same offset",
					logging.Int("offset", offset),
					logging.String("kept", span.String()),
					logging.String("displaced", prev.String()))
			}
			claims[offset] = span
		}
	}

	for _, sentence := range sentences {
		prev := ""
		for i := range sentence {
			tok := &sentence[i]

			label := ""
			for offset := tok.Start; offset < tok.End; offset++ {
				span, claimed := claims[offset]
				if !claimed {
					continue
				}
				if offset != tok.Start {
					logger.Warn("annotation-token boundary mismatch",
						logging.String("token", tok.Text),
						logging.String("annotation", span.Text),
						logging.Int("token_start", tok.Start),
						logging.Int("annotation_offset", offset))
				}
				label = span.Type
				break
			}

			if label != "" {
				if label == prev {
					tok.Tag = "I-" + label
				} else {
					tok.Tag = "B-" + label
				}
			}
			prev = label
		}
	}
}

// CollapseSingleClass rewrites every non-O tag to carry the single override
// class, preserving the B-/I- prefix.
func CollapseSingleClass(sentences []conll.Sentence, class string) {
	if class == "" {
		return
	}
	for _, sentence := range sentences {
		for i := range sentence {
			if tag := sentence[i].Tag; tag != "O" && len(tag) >= 2 {
				sentence[i].Tag = tag[:2] + class
			}
		}
	}
}
