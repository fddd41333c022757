package convert

import (
	"errors"
	"strings"
	"unicode/utf8"

	"annconv/internal/conll"
	"annconv/internal/standoff"
	"annconv/internal/token"
)

// IsFormatError reports whether err stems from malformed input rather than
// an I/O failure or invariant violation. Format errors abort only the
// current file; the batch driver may continue past them.
func IsFormatError(err error) bool {
	return errors.Is(err, standoff.ErrFormat) || errors.Is(err, conll.ErrFormat)
}

// Tokenize splits text into sentences of offset-tagged tokens, every tag
// initially "O". Whitespace tokens advance the running offset but are not
// emitted as rows; sentences without any non-whitespace token are dropped
// the same way.
func Tokenize(tokenizer token.Tokenizer, text string) []conll.Sentence {
	offset := 0
	var sentences []conll.Sentence
	for _, tokens := range tokenizer.Sentences(text) {
		var rows conll.Sentence
		for _, tok := range tokens {
			width := utf8.RuneCountInString(tok)
			if strings.TrimSpace(tok) != "" {
				rows = append(rows, conll.Token{Tag: "O", Start: offset, End: offset + width, Text: tok})
			}
			offset += width
		}
		if len(rows) > 0 {
			sentences = append(sentences, rows)
		}
	}
	return sentences
}
