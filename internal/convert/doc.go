// Package convert implements the two conversion directions.
//
// Forward: raw text is tokenized into offset-tagged sentences and standoff
// spans are projected onto the tokens as BIO labels. Reverse: tagged
// document containers are walked in lockstep with independently tokenized
// text to reconstruct character offsets and emit standoff records, chunked
// into bounded segments.
//
// All character offsets are counted in runes, matching the offset convention
// of standoff annotation tools.
package convert
