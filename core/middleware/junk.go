package middleware

import (
	"github.com/FocuswithJustin/Bibliograph/core/bib"
	"github.com/FocuswithJustin/Bibliograph/core/errors"
)

// junk is a non-comment block together with the run of comment blocks
// immediately preceding it, kept in parse order. During comment-preserving
// sorts a junk moves as a unit. The final junk of a document may consist
// of comments only; such a junk has no main block.
type junk struct {
	blocks []bib.Block
}

// hasMainBlock reports whether the junk ends in a non-comment block.
func (j *junk) hasMainBlock() bool {
	return len(j.blocks) > 0 && !bib.IsComment(j.blocks[len(j.blocks)-1])
}

// mainBlock returns the junk's main (non-comment) block. A comment-only
// junk has no main block; asking for one is an invariant violation, never
// a silent default, since keying such a junk by an arbitrary comment would
// corrupt sort semantics.
func (j *junk) mainBlock() (bib.Block, error) {
	if !j.hasMainBlock() {
		return nil, errors.NewInvariant("junk", "junk has no main block")
	}
	return j.blocks[len(j.blocks)-1], nil
}

// gatherJunks partitions blocks into junks with an explicit left-to-right
// scan: every non-comment block closes the current junk, and a trailing
// run of comments forms one final main-block-less junk. Concatenating the
// junks' blocks in order reproduces the input exactly.
func gatherJunks(blocks []bib.Block) []junk {
	var junks []junk
	start := 0
	for i, b := range blocks {
		if !bib.IsComment(b) {
			junks = append(junks, junk{blocks: blocks[start : i+1]})
			start = i + 1
		}
	}

	// Trailing comments with no block following them.
	if start < len(blocks) {
		junks = append(junks, junk{blocks: blocks[start:]})
	}

	return junks
}

// flattenJunks concatenates the junks' blocks into a fresh slice.
func flattenJunks(junks []junk, total int) []bib.Block {
	out := make([]bib.Block, 0, total)
	for _, j := range junks {
		out = append(out, j.blocks...)
	}
	return out
}
