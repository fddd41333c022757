package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"annconv/internal/conll"
	"annconv/internal/standoff"
)

// DefaultSegmentEntities is the entity-id budget per output segment.
const DefaultSegmentEntities = 1000

// TokenizedSentence is one line of the companion tokenized text file: a
// sentence key, then space-separated tokens. The first '|' on the line
// separates the key from the tokens.
type TokenizedSentence struct {
	Key    string
	Tokens []string
}

// ParseTokenizedText reads the companion file, one sentence per line.
func ParseTokenizedText(r io.Reader) ([]TokenizedSentence, error) {
	var sentences []TokenizedSentence
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Split(strings.Replace(scanner.Text(), "|", " ", 1), " ")
		sentences = append(sentences, TokenizedSentence{Key: fields[0], Tokens: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tokenized text: %w", err)
	}
	return sentences, nil
}

// Line renders the sentence back in the on-disk form, '|' after the key.
func (s TokenizedSentence) Line() string {
	if len(s.Tokens) == 0 {
		return s.Key
	}
	return s.Key + "|" + strings.Join(s.Tokens, " ")
}

// OpenSegment opens the .ann/.txt output pair for one segment of the
// current document. Both writers are closed by MapDocument on every exit
// path, including errors.
type OpenSegment func(segment int) (ann io.WriteCloser, txt io.WriteCloser, err error)

// ReverseOptions controls reverse mapping.
type ReverseOptions struct {
	// SegmentEntities caps the entity ids assigned per output segment;
	// <= 0 selects DefaultSegmentEntities.
	SegmentEntities int
}

// ReverseResult summarizes one mapped document.
type ReverseResult struct {
	Segments int
	Entities int
}

// MapDocument walks a tagged document container and its independently
// tokenized text in lockstep, reconstructing character offsets and writing
// standoff records. The running offset is seeded per sentence by the key
// field width plus its separator; each token then claims
// [offset, offset+width) and advances past a single separator.
//
// A new segment pair is started after any sentence that exhausts the entity
// budget; ids and offsets restart per segment. Segments are opened lazily so
// an exactly exhausted budget never leaves an empty trailing pair.
func MapDocument(doc conll.Document, tokenized []TokenizedSentence, open OpenSegment, opts ReverseOptions) (ReverseResult, error) {
	maxEntities := opts.SegmentEntities
	if maxEntities <= 0 {
		maxEntities = DefaultSegmentEntities
	}

	var result ReverseResult
	if len(doc.Sentences) != len(tokenized) {
		return result, fmt.Errorf("%w: document %q has %d sentences but tokenized text has %d",
			conll.ErrFormat, doc.Name, len(doc.Sentences), len(tokenized))
	}

	var (
		ann, txt io.WriteCloser
		segment  int
	)
	closeSegment := func() error {
		if ann == nil {
			return nil
		}
		annErr := ann.Close()
		txtErr := txt.Close()
		ann, txt = nil, nil
		if annErr != nil {
			return fmt.Errorf("close segment %d annotations: %w", segment, annErr)
		}
		if txtErr != nil {
			return fmt.Errorf("close segment %d text: %w", segment, txtErr)
		}
		return nil
	}
	defer func() {
		_ = closeSegment()
	}()

	ensureSegment := func() error {
		if ann != nil {
			return nil
		}
		segment++
		var err error
		ann, txt, err = open(segment)
		if err != nil {
			return fmt.Errorf("open segment %d: %w", segment, err)
		}
		result.Segments = segment
		return nil
	}

	idnum := 1
	offset := 0
	for i, rows := range doc.Sentences {
		tokSent := tokenized[i]
		if len(rows) != len(tokSent.Tokens) {
			return result, fmt.Errorf("%w: document %q sentence %d has %d rows but %d tokens",
				conll.ErrFormat, doc.Name, i+1, len(rows), len(tokSent.Tokens))
		}
		if err := ensureSegment(); err != nil {
			return result, err
		}

		offset += utf8.RuneCountInString(tokSent.Key) + 1
		for _, row := range rows {
			record, err := formatRow(row, idnum, offset)
			if err != nil {
				return result, err
			}
			if _, err := fmt.Fprintln(ann, record); err != nil {
				return result, fmt.Errorf("write segment %d annotations: %w", segment, err)
			}
			offset += utf8.RuneCountInString(row.Columns[wordColumn]) + 1
			idnum++
			result.Entities++
		}
		if _, err := fmt.Fprintln(txt, tokSent.Line()); err != nil {
			return result, fmt.Errorf("write segment %d text: %w", segment, err)
		}

		if idnum > maxEntities {
			if err := closeSegment(); err != nil {
				return result, err
			}
			idnum = 1
			offset = 0
		}
	}

	return result, closeSegment()
}

// Container column layout: word in column 4, composite POS in column 5
// (1-indexed), the POS truncated at its first bracket.
const (
	wordColumn = 3
	posColumn  = 4
)

func formatRow(row conll.Row, idnum, offset int) (string, error) {
	if len(row.Columns) <= posColumn {
		return "", fmt.Errorf("%w: line %d has %d columns, expected at least %d",
			conll.ErrFormat, row.Line, len(row.Columns), posColumn+1)
	}
	pos := row.Columns[posColumn]
	bracket := strings.IndexByte(pos, '[')
	if bracket < 0 {
		return "", fmt.Errorf("%w: line %d POS column %q has no bracket", conll.ErrFormat, row.Line, pos)
	}
	word := row.Columns[wordColumn]

	record, err := standoff.FormatRecord(idnum, pos[:bracket], offset, offset+utf8.RuneCountInString(word), word)
	if err != nil {
		return "", fmt.Errorf("line %d: %w", row.Line, err)
	}
	return record, nil
}
