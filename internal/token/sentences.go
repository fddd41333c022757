package token

import "regexp"

// Sentence-ending punctuation, optionally followed by closing quotes or
// brackets, followed by a single horizontal whitespace character. The
// whitespace character is swapped for a newline rather than a newline being
// inserted, so the total character count of the line never changes and
// downstream offsets stay valid.
var sentenceBreakRE = regexp.MustCompile(`([.!?][)\]'"]*)[ \t]`)

// SentenceBreaksToNewlines marks detected sentence boundaries in line by
// rewriting the whitespace after the boundary to a newline. Splitting the
// result on newlines yields per-sentence chunks of the same total length as
// the input.
func SentenceBreaksToNewlines(line string) string {
	return sentenceBreakRE.ReplaceAllString(line, "$1\n")
}
