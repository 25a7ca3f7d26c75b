package bib

// model.go - Consolidated block model type definitions
// This file contains the block variants that make up a bibliographic
// document. All transforms should import these types from core/bib rather
// than defining their own.

// BlockType identifies the kind of a document block.
type BlockType string

// Block type constants. BlockTypeComment and BlockTypeBlock are abstract:
// no concrete block carries them, but they appear in ancestor chains and
// may be used in type orders to address whole families of blocks.
const (
	BlockTypeBlock           BlockType = "BLOCK"
	BlockTypeEntry           BlockType = "ENTRY"
	BlockTypeString          BlockType = "STRING"
	BlockTypePreamble        BlockType = "PREAMBLE"
	BlockTypeComment         BlockType = "COMMENT"
	BlockTypeImplicitComment BlockType = "IMPLICIT_COMMENT"
	BlockTypeExplicitComment BlockType = "EXPLICIT_COMMENT"
)

// validBlockTypes is the set of valid block types.
var validBlockTypes = map[BlockType]bool{
	BlockTypeBlock:           true,
	BlockTypeEntry:           true,
	BlockTypeString:          true,
	BlockTypePreamble:        true,
	BlockTypeComment:         true,
	BlockTypeImplicitComment: true,
	BlockTypeExplicitComment: true,
}

// IsValid returns true if the block type is valid.
func (t BlockType) IsValid() bool {
	return validBlockTypes[t]
}

// blockTypeParents is the declared variant hierarchy. Every type except
// the root has exactly one parent; ancestor chains are short and static.
var blockTypeParents = map[BlockType]BlockType{
	BlockTypeEntry:           BlockTypeBlock,
	BlockTypeString:          BlockTypeBlock,
	BlockTypePreamble:        BlockTypeBlock,
	BlockTypeComment:         BlockTypeBlock,
	BlockTypeImplicitComment: BlockTypeComment,
	BlockTypeExplicitComment: BlockTypeComment,
}

// Parent returns the declared parent of the block type, if any.
// The root type BLOCK has no parent.
func (t BlockType) Parent() (BlockType, bool) {
	p, ok := blockTypeParents[t]
	return p, ok
}

// Ancestors returns the type's ancestor chain, most specific first,
// starting with the type itself and ending at the root BLOCK type.
func (t BlockType) Ancestors() []BlockType {
	chain := []BlockType{t}
	for {
		p, ok := blockTypeParents[chain[len(chain)-1]]
		if !ok {
			return chain
		}
		chain = append(chain, p)
	}
}

// IsComment returns true if the type descends from (or is) COMMENT.
func (t BlockType) IsComment() bool {
	for _, a := range t.Ancestors() {
		if a == BlockTypeComment {
			return true
		}
	}
	return false
}

// Block is a single unit of a bibliographic document. Blocks record where
// they came from (start line and raw source text) but are otherwise plain
// in-memory values; parsing and serialization live elsewhere.
type Block interface {
	// Type returns the concrete block type tag.
	Type() BlockType

	// StartLine returns the 1-indexed source line the block started on,
	// or 0 if the block was constructed programmatically.
	StartLine() int

	// Raw returns the raw source text of the block, if known.
	Raw() string

	// Copy returns a deep copy of the block.
	Copy() Block
}

// Field is a single key-value field of an entry (e.g. author, title).
type Field struct {
	// Key is the field name, lowercased by convention.
	Key string `json:"key"`

	// Value is the field value with enclosures stripped.
	Value string `json:"value"`

	// StartLine is the 1-indexed source line of the field, or 0.
	StartLine int `json:"start_line,omitempty"`
}

// Copy returns a deep copy of the field.
func (f *Field) Copy() *Field {
	c := *f
	return &c
}

// Entry is a bibliographic record (e.g. @article{key, ...}).
type Entry struct {
	// EntryType is the record category (e.g. "article", "book").
	EntryType string `json:"entry_type"`

	// Key is the citation key.
	Key string `json:"key"`

	// Fields contains the entry fields in document order.
	Fields []*Field `json:"fields,omitempty"`

	Line    int    `json:"start_line,omitempty"`
	RawText string `json:"raw,omitempty"`
}

// Type returns BlockTypeEntry.
func (e *Entry) Type() BlockType { return BlockTypeEntry }

// StartLine returns the source line the entry started on.
func (e *Entry) StartLine() int { return e.Line }

// Raw returns the raw source text of the entry.
func (e *Entry) Raw() string { return e.RawText }

// Copy returns a deep copy of the entry.
func (e *Entry) Copy() Block {
	c := *e
	if e.Fields != nil {
		c.Fields = make([]*Field, len(e.Fields))
		for i, f := range e.Fields {
			c.Fields[i] = f.Copy()
		}
	}
	return &c
}

// Get returns the value of the named field and whether it exists.
func (e *Entry) Get(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Key == name {
			return f.Value, true
		}
	}
	return "", false
}

// Set sets the named field, appending it if not present.
func (e *Entry) Set(name, value string) {
	for _, f := range e.Fields {
		if f.Key == name {
			f.Value = value
			return
		}
	}
	e.Fields = append(e.Fields, &Field{Key: name, Value: value})
}

// FieldKeys returns the field names in document order.
func (e *Entry) FieldKeys() []string {
	keys := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		keys[i] = f.Key
	}
	return keys
}

// String is a string macro definition (e.g. @string{key = "value"}).
type String struct {
	// Key is the macro name.
	Key string `json:"key"`

	// Value is the macro expansion.
	Value string `json:"value"`

	Line    int    `json:"start_line,omitempty"`
	RawText string `json:"raw,omitempty"`
}

// Type returns BlockTypeString.
func (s *String) Type() BlockType { return BlockTypeString }

// StartLine returns the source line the macro started on.
func (s *String) StartLine() int { return s.Line }

// Raw returns the raw source text of the macro.
func (s *String) Raw() string { return s.RawText }

// Copy returns a deep copy of the macro definition.
func (s *String) Copy() Block {
	c := *s
	return &c
}

// Preamble is a preamble block (e.g. @preamble{...}).
type Preamble struct {
	// Value is the raw preamble text.
	Value string `json:"value"`

	Line    int    `json:"start_line,omitempty"`
	RawText string `json:"raw,omitempty"`
}

// Type returns BlockTypePreamble.
func (p *Preamble) Type() BlockType { return BlockTypePreamble }

// StartLine returns the source line the preamble started on.
func (p *Preamble) StartLine() int { return p.Line }

// Raw returns the raw source text of the preamble.
func (p *Preamble) Raw() string { return p.RawText }

// Copy returns a deep copy of the preamble.
func (p *Preamble) Copy() Block {
	c := *p
	return &c
}

// ImplicitComment is free text between blocks, kept verbatim.
type ImplicitComment struct {
	// Comment is the comment text.
	Comment string `json:"comment"`

	Line    int    `json:"start_line,omitempty"`
	RawText string `json:"raw,omitempty"`
}

// Type returns BlockTypeImplicitComment.
func (c *ImplicitComment) Type() BlockType { return BlockTypeImplicitComment }

// StartLine returns the source line the comment started on.
func (c *ImplicitComment) StartLine() int { return c.Line }

// Raw returns the raw source text of the comment.
func (c *ImplicitComment) Raw() string { return c.RawText }

// Copy returns a deep copy of the comment.
func (c *ImplicitComment) Copy() Block {
	cp := *c
	return &cp
}

// ExplicitComment is an @comment{...} block.
type ExplicitComment struct {
	// Comment is the comment text.
	Comment string `json:"comment"`

	Line    int    `json:"start_line,omitempty"`
	RawText string `json:"raw,omitempty"`
}

// Type returns BlockTypeExplicitComment.
func (c *ExplicitComment) Type() BlockType { return BlockTypeExplicitComment }

// StartLine returns the source line the comment started on.
func (c *ExplicitComment) StartLine() int { return c.Line }

// Raw returns the raw source text of the comment.
func (c *ExplicitComment) Raw() string { return c.RawText }

// Copy returns a deep copy of the comment.
func (c *ExplicitComment) Copy() Block {
	cp := *c
	return &cp
}

// IsComment returns true if the block is a comment variant.
func IsComment(b Block) bool {
	return b.Type().IsComment()
}

// CopyBlocks deep-copies a block sequence.
func CopyBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Copy()
	}
	return out
}
