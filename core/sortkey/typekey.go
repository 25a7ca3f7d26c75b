package sortkey

import (
	"github.com/FocuswithJustin/Bibliograph/core/bib"
	"github.com/FocuswithJustin/Bibliograph/core/cache"
)

// TypeKeyConfig configures a type-dispatch key generator.
type TypeKeyConfig struct {
	// Order dictates the outermost rank of blocks: a block's rank is the
	// position of the first type in its ancestor chain that appears here.
	// Nil means DefaultTypeOrder().
	Order []bib.BlockType

	// SubKeys optionally maps block types to secondary key generators
	// applied within a rank. Lookup walks the ancestor chain like Order.
	// A rank should be covered uniformly or not at all; mixing blocks
	// with and without a sub-key at the same rank is a configuration
	// contract violation (here the keyless block orders first, but that
	// is not a supported property).
	SubKeys map[bib.BlockType]Gen

	// FallbackRank is the rank for types whose entire ancestor chain is
	// absent from Order. Negative means len(Order).
	FallbackRank int
}

// DefaultTypeOrder returns the default block type order: string macros,
// preambles, entries, then comments.
func DefaultTypeOrder() []bib.BlockType {
	return []bib.BlockType{
		bib.BlockTypeString,
		bib.BlockTypePreamble,
		bib.BlockTypeEntry,
		bib.BlockTypeImplicitComment,
		bib.BlockTypeExplicitComment,
	}
}

// DefaultTypeKeyConfig returns a TypeKeyConfig with the default order, no
// sub-keys, and the fallback rank one past the end of the order.
func DefaultTypeKeyConfig() TypeKeyConfig {
	return TypeKeyConfig{
		Order:        DefaultTypeOrder(),
		FallbackRank: -1,
	}
}

// dispatch is the cached resolution for one concrete block type.
type dispatch struct {
	rank int
	sub  Gen // nil when no sub-key applies
}

// TypeKey makes a key generator that sorts blocks by type rank, breaking
// ties within a rank by the configured sub-key.
//
// Rank and sub-key resolution depend only on the block's concrete type
// tag, so both are resolved once per type via an ancestor-chain walk and
// cached; the cache is safe for concurrent sorts.
func TypeKey(cfg TypeKeyConfig) Gen {
	order := cfg.Order
	if order == nil {
		order = DefaultTypeOrder()
	}
	fallback := cfg.FallbackRank
	if fallback < 0 {
		fallback = len(order)
	}

	rankOf := make(map[bib.BlockType]int, len(order))
	for i, t := range order {
		if _, ok := rankOf[t]; !ok {
			rankOf[t] = i
		}
	}

	resolved := cache.New[bib.BlockType, dispatch](cache.Config{})

	resolve := func(t bib.BlockType) dispatch {
		if d, ok := resolved.Get(t); ok {
			return d
		}
		d := dispatch{rank: fallback}
		for _, a := range t.Ancestors() {
			if r, ok := rankOf[a]; ok {
				d.rank = r
				break
			}
		}
		for _, a := range t.Ancestors() {
			if sub, ok := cfg.SubKeys[a]; ok {
				d.sub = sub
				break
			}
		}
		resolved.Put(t, d)
		return d
	}

	return func(b bib.Block) Key {
		d := resolve(b.Type())
		if d.sub == nil {
			return TupleKey{IntKey(d.rank)}
		}
		return TupleKey{IntKey(d.rank), d.sub(b)}
	}
}
