package token

import "github.com/rivo/uniseg"

// unicodeTokenizer segments text with the Unicode text segmentation rules.
// Sentence and word segmentation in uniseg are exhaustive: every byte of the
// input lands in exactly one segment, so the offset-preservation invariant
// holds without further bookkeeping.
type unicodeTokenizer struct{}

func (unicodeTokenizer) Sentences(text string) [][]string {
	var sentences [][]string
	state := -1
	for len(text) > 0 {
		var sentence string
		sentence, text, state = uniseg.FirstSentenceInString(text, state)
		if sentence == "" {
			break
		}
		tokens := words(sentence)
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	return sentences
}

func words(sentence string) []string {
	var tokens []string
	state := -1
	for len(sentence) > 0 {
		var word string
		word, sentence, state = uniseg.FirstWordInString(sentence, state)
		if word == "" {
			break
		}
		tokens = append(tokens, word)
	}
	return tokens
}
