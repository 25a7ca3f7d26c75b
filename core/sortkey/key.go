// Package sortkey builds ordering keys for document blocks.
//
// A Key is an opaque value that knows how to compare itself against other
// keys produced by the same generator. Generators compose: comparators can
// be adapted into keys, any key can be reversed, and several keys can be
// combined into a lexicographic tuple. TypeKey dispatches on the block's
// declared type hierarchy to produce a (rank, sub-key) pair.
//
// Keys must be pure and satisfy the total-order axioms. Comparing keys
// from different generators is not supported; concrete key types assert
// the dynamic type of their operand and panic on a mismatch, which is the
// documented consequence of violating that contract.
package sortkey

import (
	"strings"

	"github.com/FocuswithJustin/Bibliograph/core/bib"
)

// Key is an ordering key derived from a block. Compare returns a negative
// value if the receiver orders before other, zero if they are equal, and a
// positive value otherwise.
type Key interface {
	Compare(other Key) int
}

// Gen generates an ordering key for a block. Gen values must be pure:
// no side effects, and equal inputs yield keys that compare equal.
type Gen func(b bib.Block) Key

// Comparator compares two blocks, returning negative/zero/positive like
// strings.Compare. It must satisfy the total-order axioms; a comparator
// that does not yields undefined sort results.
type Comparator func(a, b bib.Block) int

// StringKey orders by byte-wise string comparison.
type StringKey string

// Compare implements Key.
func (k StringKey) Compare(other Key) int {
	return strings.Compare(string(k), string(other.(StringKey)))
}

// IntKey orders by integer comparison.
type IntKey int

// Compare implements Key.
func (k IntKey) Compare(other Key) int {
	o := other.(IntKey)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

// TupleKey orders lexicographically: the first differing component
// decides. When one tuple is a strict prefix of the other, the shorter
// tuple orders first.
type TupleKey []Key

// Compare implements Key.
func (k TupleKey) Compare(other Key) int {
	o := other.(TupleKey)
	n := len(k)
	if len(o) < n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		if c := k[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	return len(k) - len(o)
}

// comparatorKey adapts a comparator into a key by wrapping the block
// together with the comparator and delegating comparison to it.
type comparatorKey struct {
	block bib.Block
	cmp   Comparator
}

// Compare implements Key.
func (k comparatorKey) Compare(other Key) int {
	o := other.(comparatorKey)
	return k.cmp(k.block, o.block)
}

// reversedKey inverts the order of its wrapped key. Reversed keys compare
// only against other reversed keys from an equivalently-ordered generator.
type reversedKey struct {
	base Key
}

// Compare implements Key.
func (k reversedKey) Compare(other Key) int {
	return -k.base.Compare(other.(reversedKey).base)
}

// FromComparator makes a key generator from a comparison function.
// Keys produced by the result are mutually comparable only with keys from
// the same generator.
func FromComparator(cmp Comparator) Gen {
	return func(b bib.Block) Key {
		return comparatorKey{block: b, cmp: cmp}
	}
}

// Reversed makes a key generator that inverts the order described by sub.
// Applying Reversed twice restores the original order.
func Reversed(sub Gen) Gen {
	return func(b bib.Block) Key {
		return reversedKey{base: sub(b)}
	}
}

// Lexicographic combines sub-generators into a tuple key: compare by the
// first component, break ties with the next, left to right.
func Lexicographic(subs ...Gen) Gen {
	return func(b bib.Block) Key {
		t := make(TupleKey, len(subs))
		for i, sub := range subs {
			t[i] = sub(b)
		}
		return t
	}
}

// StringKeyOf makes a key generator from a string extractor.
func StringKeyOf(f func(b bib.Block) string) Gen {
	return func(b bib.Block) Key {
		return StringKey(f(b))
	}
}

// IntKeyOf makes a key generator from an integer extractor.
func IntKeyOf(f func(b bib.Block) int) Gen {
	return func(b bib.Block) Key {
		return IntKey(f(b))
	}
}

// ByEntryType keys entries by their entry type (e.g. "article", "book").
// Non-entry blocks get the empty string; this generator is meant as a
// sub-key under the entry rank of a TypeKey.
func ByEntryType() Gen {
	return StringKeyOf(func(b bib.Block) string {
		if e, ok := b.(*bib.Entry); ok {
			return e.EntryType
		}
		return ""
	})
}

// ByCitationKey keys entries by their citation key. Non-entry blocks get
// the empty string.
func ByCitationKey() Gen {
	return StringKeyOf(func(b bib.Block) string {
		if e, ok := b.(*bib.Entry); ok {
			return e.Key
		}
		return ""
	})
}

// ByField keys entries by the value of the named field. Entries without
// the field, and non-entry blocks, get the empty string.
func ByField(name string) Gen {
	return StringKeyOf(func(b bib.Block) string {
		if e, ok := b.(*bib.Entry); ok {
			if v, ok := e.Get(name); ok {
				return v
			}
		}
		return ""
	})
}

// ByStartLine keys blocks by their source line, restoring document order.
func ByStartLine() Gen {
	return IntKeyOf(func(b bib.Block) int {
		return b.StartLine()
	})
}
