package conll

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	beginDocumentPrefix = "#begin document "
	endDocumentPrefix   = "#end document"
)

// Row is one token record of a container document, with the 1-indexed line
// number retained for error reporting.
type Row struct {
	Line    int
	Columns []string
}

// Document is one "#begin document" block: blank-line-separated sentences of
// whitespace-split token rows.
type Document struct {
	Name      string
	Sentences [][]Row
}

// ReadDocuments parses every document container in r, in input order.
// Comment lines inside a document are skipped; a document with no sentences
// wraps ErrFormat.
func ReadDocuments(r io.Reader) ([]Document, error) {
	var documents []Document

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if !strings.HasPrefix(line, beginDocumentPrefix) {
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(line, beginDocumentPrefix))
		doc := Document{Name: name, Sentences: [][]Row{{}}}

		for scanner.Scan() {
			lineno++
			line = scanner.Text()
			switch {
			case strings.HasPrefix(line, endDocumentPrefix):
				goto done
			case strings.HasPrefix(line, "#"):
				// comment row
			case strings.TrimSpace(line) != "":
				last := len(doc.Sentences) - 1
				doc.Sentences[last] = append(doc.Sentences[last], Row{Line: lineno, Columns: strings.Fields(line)})
			default:
				doc.Sentences = append(doc.Sentences, nil)
			}
		}
	done:
		if last := len(doc.Sentences) - 1; len(doc.Sentences[last]) == 0 {
			doc.Sentences = doc.Sentences[:last]
		}
		if len(doc.Sentences) == 0 {
			return nil, fmt.Errorf("%w: document %q is empty", ErrFormat, name)
		}
		documents = append(documents, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: no document containers found", ErrFormat)
	}
	return documents, nil
}
