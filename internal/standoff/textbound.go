package standoff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"annconv/internal/logging"
)

// ErrFormat marks malformed standoff input. Callers use errors.Is to decide
// whether a failure is a per-file format problem or something fatal.
var ErrFormat = errors.New("standoff format error")

// Textbound is a single standoff span: half-open [Start, End) character
// offsets over the original document, a type, and the covered text. Type may
// be a dash-joined composite when attribute folding is enabled.
type Textbound struct {
	ID    string
	Start int
	End   int
	Type  string
	Text  string
}

// Length returns the number of characters the span covers.
func (t Textbound) Length() int { return t.End - t.Start }

// Overlaps reports whether the two spans share at least one offset.
func (t Textbound) Overlaps(other Textbound) bool {
	return !(other.Start >= t.End || other.End <= t.Start)
}

func (t Textbound) String() string {
	return fmt.Sprintf("%s %q (%d-%d) %q", t.ID, t.Type, t.Start, t.End, t.Text)
}

// ParseOptions controls textbound parsing.
type ParseOptions struct {
	// AppendAttributes folds attribute values into the owning textbound's
	// type, dash-separated, in canonical (entity id, attribute) order.
	AppendAttributes bool
}

var (
	textboundLineRE = regexp.MustCompile(`^T\d+\t`)
	attributeLineRE = regexp.MustCompile(`^A\d+\t`)
)

type attribute struct {
	entityID string
	value    string
}

// Parse reads textbound and attribute records from r. Record kinds other
// than T and A are ignored. Textbounds are returned in input order.
func Parse(r io.Reader, opts ParseOptions, logger *slog.Logger) ([]Textbound, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var (
		order      []string
		byID       = make(map[string]*Textbound)
		attributes []attribute
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\n")

		if !textboundLineRE.MatchString(line) {
			if attributeLineRE.MatchString(line) {
				att, err := parseAttribute(line)
				if err != nil {
					return nil, err
				}
				attributes = append(attributes, att)
			}
			continue
		}

		tb, err := parseTextbound(line)
		if err != nil {
			return nil, err
		}
		if _, seen := byID[tb.ID]; !seen {
			order = append(order, tb.ID)
		}
		byID[tb.ID] = &tb
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}

	if opts.AppendAttributes {
		foldAttributes(byID, attributes, logger)
	}

	textbounds := make([]Textbound, 0, len(order))
	for _, id := range order {
		textbounds = append(textbounds, *byID[id])
	}
	return textbounds, nil
}

func parseTextbound(line string) (Textbound, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return Textbound{}, fmt.Errorf("%w: textbound line has %d tab fields, expected 3: %q", ErrFormat, len(fields), line)
	}
	id, typeOffsets, text := fields[0], fields[1], fields[2]

	parts := strings.Fields(typeOffsets)
	if len(parts) != 3 {
		return Textbound{}, fmt.Errorf("%w: textbound %s has malformed type/offsets field %q", ErrFormat, id, typeOffsets)
	}
	start, err := strconv.Atoi(parts[1])
	if err != nil {
		return Textbound{}, fmt.Errorf("%w: textbound %s start offset %q is not an integer", ErrFormat, id, parts[1])
	}
	end, err := strconv.Atoi(parts[2])
	if err != nil {
		return Textbound{}, fmt.Errorf("%w: textbound %s end offset %q is not an integer", ErrFormat, id, parts[2])
	}

	return Textbound{ID: id, Start: start, End: end, Type: parts[0], Text: text}, nil
}

func parseAttribute(line string) (attribute, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return attribute{}, fmt.Errorf("%w: attribute line has %d tab fields, expected 2: %q", ErrFormat, len(fields), line)
	}
	parts := strings.SplitN(fields[1], " ", 2)
	if len(parts) != 2 {
		return attribute{}, fmt.Errorf("%w: attribute %s has malformed value field %q", ErrFormat, fields[0], fields[1])
	}
	return attribute{entityID: parts[1], value: parts[0]}, nil
}

// foldAttributes appends attribute values to their owning textbound's type in
// canonical order: sorted by entity id, then by attribute value.
func foldAttributes(byID map[string]*Textbound, attributes []attribute, logger *slog.Logger) {
	sort.Slice(attributes, func(i, j int) bool {
		if attributes[i].entityID != attributes[j].entityID {
			return attributes[i].entityID < attributes[j].entityID
		}
		return attributes[i].value < attributes[j].value
	})
	for _, att := range attributes {
		tb, ok := byID[att.entityID]
		if !ok {
			logger.Warn("attribute references unknown textbound",
				logging.String("entity_id", att.entityID),
				logging.String("attribute", att.value))
			continue
		}
		tb.Type = tb.Type + "-" + att.value
	}
}
