package conll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrFormat marks input that does not match the expected tagging or
// container structure.
var ErrFormat = errors.New("conll format error")

// Token is one tagged row of a sentence. End-Start always equals len(Text)
// for tokens produced by the converter.
type Token struct {
	Tag   string
	Start int
	End   int
	Text  string
}

// Sentence is an ordered run of contiguous tokens. Sentence boundaries are
// carried by the grouping itself; serialization inserts the blank separator
// lines.
type Sentence []Token

var (
	emptyLineRE = regexp.MustCompile(`^\s*$`)
	conllLineRE = regexp.MustCompile(`^\S+\t\d+\t\d+.`)
)

// WriteSentences serializes sentences as tab-separated rows with a blank
// line after every sentence.
func WriteSentences(w io.Writer, sentences []Sentence) error {
	bw := bufio.NewWriter(w)
	for _, sentence := range sentences {
		for _, tok := range sentence {
			if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%s\n", tok.Tag, tok.Start, tok.End, tok.Text); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSentence returns raw lines for one sentence, up to and including the
// blank separator line (or EOF). Non-blank lines must look like tagging
// rows; a line that does not wraps ErrFormat.
func ReadSentence(r *bufio.Reader) ([]string, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
			if emptyLineRE.MatchString(line) {
				return lines, nil
			}
			if !conllLineRE.MatchString(line) {
				return nil, fmt.Errorf("%w: line not in tagging format: %q", ErrFormat, strings.TrimSuffix(line, "\n"))
			}
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// StripLabels removes the leading tab-separated label from every non-blank
// line. The returned labels slice holds one entry per line, with the empty
// string standing in for blank separator lines; AttachLabels reverses the
// operation byte for byte.
func StripLabels(lines []string) (labels []string, stripped []string) {
	labels = make([]string, 0, len(lines))
	stripped = make([]string, 0, len(lines))
	for _, line := range lines {
		if emptyLineRE.MatchString(line) {
			labels = append(labels, "")
			stripped = append(stripped, line)
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		labels = append(labels, fields[0])
		if len(fields) == 2 {
			stripped = append(stripped, fields[1])
		} else {
			stripped = append(stripped, "")
		}
	}
	return labels, stripped
}

// AttachLabels prefixes each non-blank line with its tab-separated label. A
// label/line count mismatch is a programming invariant violation, not an
// input problem, and fails hard.
func AttachLabels(labels, lines []string) ([]string, error) {
	if len(labels) != len(lines) {
		return nil, fmt.Errorf("number of labels (%d) does not match number of lines (%d)", len(labels), len(lines))
	}
	attached := make([]string, 0, len(lines))
	for i, line := range lines {
		empty := emptyLineRE.MatchString(line)
		if empty != (labels[i] == "") {
			return nil, fmt.Errorf("label %q does not agree with line %q at index %d", labels[i], line, i)
		}
		if empty {
			attached = append(attached, line)
		} else {
			attached = append(attached, labels[i]+"\t"+line)
		}
	}
	return attached, nil
}

// ParseRow parses one tagging-format row back into a Token.
func ParseRow(line string) (Token, error) {
	fields := strings.Split(strings.TrimSuffix(line, "\n"), "\t")
	if len(fields) != 4 {
		return Token{}, fmt.Errorf("%w: row has %d tab fields, expected 4: %q", ErrFormat, len(fields), line)
	}
	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return Token{}, fmt.Errorf("%w: row start offset %q is not an integer", ErrFormat, fields[1])
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return Token{}, fmt.Errorf("%w: row end offset %q is not an integer", ErrFormat, fields[2])
	}
	return Token{Tag: fields[0], Start: start, End: end, Text: fields[3]}, nil
}
