package token

import (
	"fmt"
	"regexp"
	"strings"
)

// Strategy identifies a tokenization strategy.
type Strategy string

const (
	// StrategyRegex splits maximal ASCII alnum runs into single tokens and
	// every other character into its own one-character token, after regex
	// sentence splitting. This mirrors NERsuite tokenization.
	StrategyRegex Strategy = "regex"
	// StrategyUnicode delegates sentence and word segmentation to the
	// Unicode text segmentation rules (UAX #29 / #14 via rivo/uniseg).
	StrategyUnicode Strategy = "unicode"
	// StrategyNone treats input as pre-tokenized: one sentence per line,
	// alternating whitespace/non-whitespace runs as tokens.
	StrategyNone Strategy = "none"
)

// ParseStrategy validates a strategy name from config or flags.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case StrategyRegex, "":
		return StrategyRegex, nil
	case StrategyUnicode:
		return StrategyUnicode, nil
	case StrategyNone:
		return StrategyNone, nil
	default:
		return "", fmt.Errorf("tokenizer: unsupported strategy %q (expected regex, unicode, or none)", value)
	}
}

// Tokenizer turns raw text into sentences of offset-preserving tokens.
type Tokenizer interface {
	// Sentences splits text into sentences, each an ordered slice of
	// tokens whose concatenation across all sentences equals text.
	// Sentences containing only whitespace may be returned; callers that
	// emit rows skip them after accounting for their offsets.
	Sentences(text string) [][]string
}

// New returns the tokenizer for the given strategy.
func New(strategy Strategy) (Tokenizer, error) {
	switch strategy {
	case StrategyRegex:
		return regexTokenizer{}, nil
	case StrategyUnicode:
		return unicodeTokenizer{}, nil
	case StrategyNone:
		return pretokenizedTokenizer{}, nil
	default:
		return nil, fmt.Errorf("tokenizer: unsupported strategy %q", string(strategy))
	}
}

// NERsuite tokenization: any ASCII alnum sequence is one token, any other
// character is a single-character token. Deliberately not Unicode-aware;
// use StrategyUnicode for that.
var alnumRunRE = regexp.MustCompile(`[0-9a-zA-Z]+|[^0-9a-zA-Z]`)

// Pre-tokenized input: alternating non-space and space runs.
var fieldRunRE = regexp.MustCompile(`\S+|\s+`)

type regexTokenizer struct{}

func (regexTokenizer) Sentences(text string) [][]string {
	var sentences [][]string
	for _, line := range splitAfterNewlines(text) {
		line = SentenceBreaksToNewlines(line)
		for _, chunk := range splitAfterNewlines(line) {
			tokens := alnumRunRE.FindAllString(chunk, -1)
			if len(tokens) > 0 {
				sentences = append(sentences, tokens)
			}
		}
	}
	return sentences
}

type pretokenizedTokenizer struct{}

func (pretokenizedTokenizer) Sentences(text string) [][]string {
	var sentences [][]string
	for _, line := range splitAfterNewlines(text) {
		tokens := fieldRunRE.FindAllString(line, -1)
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	return sentences
}

// splitAfterNewlines splits text into chunks each terminated by a newline,
// keeping the newline, plus a final unterminated chunk if any. Concatenating
// the chunks reproduces text.
func splitAfterNewlines(text string) []string {
	var chunks []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			chunks = append(chunks, text)
			break
		}
		chunks = append(chunks, text[:i+1])
		text = text[i+1:]
	}
	return chunks
}
