package standoff

import (
	"fmt"
	"strings"
)

// FormatRecord renders a numbered textbound record line. The covered text
// must be a single trimmed line; reconstructed spans that violate this
// indicate a structural problem in the input pairing.
func FormatRecord(id int, spanType string, start, end int, text string) (string, error) {
	if strings.ContainsRune(text, '\n') {
		return "", fmt.Errorf("%w: newline in entity text %q", ErrFormat, text)
	}
	if text != strings.TrimSpace(text) {
		return "", fmt.Errorf("%w: entity text has untrimmed whitespace: %q", ErrFormat, text)
	}
	return fmt.Sprintf("T%d\t%s %d %d\t%s", id, spanType, start, end, text), nil
}
