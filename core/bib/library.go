package bib

import (
	"github.com/google/uuid"
)

// Library is the container for a bibliographic document: an ordered
// sequence of blocks. All mutation goes through ReplaceBlocks so that
// transforms have a single, explicit write path.
type Library struct {
	id     string
	blocks []Block
}

// New creates a library owning the given block sequence. The slice is
// taken over, not copied. Each library instance gets a unique ID so that
// copy-vs-inplace transform semantics are observable.
func New(blocks []Block) *Library {
	return &Library{
		id:     uuid.New().String(),
		blocks: blocks,
	}
}

// ID returns the unique instance ID of the library.
func (l *Library) ID() string { return l.id }

// Len returns the number of blocks in the library.
func (l *Library) Len() int { return len(l.blocks) }

// Blocks returns the live block sequence. Callers that need an
// independent snapshot should use Copy or CopyBlocks.
func (l *Library) Blocks() []Block { return l.blocks }

// ReplaceBlocks replaces the library's block sequence.
func (l *Library) ReplaceBlocks(blocks []Block) {
	l.blocks = blocks
}

// Add appends blocks to the library.
func (l *Library) Add(blocks ...Block) {
	l.blocks = append(l.blocks, blocks...)
}

// Copy returns a deep copy of the library with a fresh instance ID.
func (l *Library) Copy() *Library {
	return New(CopyBlocks(l.blocks))
}

// Entries returns the entry blocks in document order.
func (l *Library) Entries() []*Entry {
	var out []*Entry
	for _, b := range l.blocks {
		if e, ok := b.(*Entry); ok {
			out = append(out, e)
		}
	}
	return out
}

// Strings returns the string macro blocks in document order.
func (l *Library) Strings() []*String {
	var out []*String
	for _, b := range l.blocks {
		if s, ok := b.(*String); ok {
			out = append(out, s)
		}
	}
	return out
}

// Preambles returns the preamble blocks in document order.
func (l *Library) Preambles() []*Preamble {
	var out []*Preamble
	for _, b := range l.blocks {
		if p, ok := b.(*Preamble); ok {
			out = append(out, p)
		}
	}
	return out
}

// Comments returns the comment blocks (implicit and explicit) in
// document order.
func (l *Library) Comments() []Block {
	var out []Block
	for _, b := range l.blocks {
		if IsComment(b) {
			out = append(out, b)
		}
	}
	return out
}

// EntryByKey returns the entry with the given citation key, if present.
func (l *Library) EntryByKey(key string) (*Entry, bool) {
	for _, b := range l.blocks {
		if e, ok := b.(*Entry); ok && e.Key == key {
			return e, true
		}
	}
	return nil, false
}
