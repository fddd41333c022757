// Package conll reads and writes the tab-separated tagging format and the
// CoNLL-2012-style document containers used by the reverse conversion.
//
// Tagging-format rows are tag<TAB>start<TAB>end<TAB>text with a blank line
// terminating each sentence. Containers group blank-line-separated sentences
// between "#begin document <name>" and "#end document" markers.
package conll
