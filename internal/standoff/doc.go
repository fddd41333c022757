// Package standoff reads and writes brat-style standoff annotation records.
//
// Textbound records carry half-open [start, end) character offsets into the
// original document plus a type and the covered text. Attribute records may
// optionally be folded into their owning textbound's type. The package also
// resolves overlapping textbounds down to a non-overlapping set so that
// per-token label projection is well defined.
package standoff
