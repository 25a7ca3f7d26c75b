package middleware

import (
	"sort"

	"github.com/FocuswithJustin/Bibliograph/core/bib"
	"github.com/FocuswithJustin/Bibliograph/core/errors"
	"github.com/FocuswithJustin/Bibliograph/core/sortkey"
	"github.com/FocuswithJustin/Bibliograph/internal/logging"
)

// SortBlocksConfig configures a SortBlocksMiddleware.
type SortBlocksConfig struct {
	// Key generates the ordering key for each block. Required.
	Key sortkey.Gen

	// Reverse inverts the comparison inside the stable sort. Equal-key
	// elements still retain their input order.
	Reverse bool

	// PreserveCommentsOnTop keeps each run of leading comments attached
	// to the block that follows it, so the two move together.
	PreserveCommentsOnTop bool

	// AllowInplaceModification reorders the input library's own block
	// sequence. When false the input is left untouched and a new library
	// is returned.
	AllowInplaceModification bool
}

// DefaultSortBlocksConfig returns the default sort configuration:
// comments preserved on top, in-place modification allowed.
func DefaultSortBlocksConfig() SortBlocksConfig {
	return SortBlocksConfig{
		PreserveCommentsOnTop:    true,
		AllowInplaceModification: true,
	}
}

// SortBlocksMiddleware reorders a library's blocks by a derived key.
// The sort is stable: blocks (or junks) with equal keys retain their
// relative input order.
type SortBlocksMiddleware struct {
	cfg SortBlocksConfig
}

// NewSortBlocks creates a block-sorting middleware. The config must carry
// a key generator.
func NewSortBlocks(cfg SortBlocksConfig) (*SortBlocksMiddleware, error) {
	if cfg.Key == nil {
		return nil, errors.NewValidation("key", "sort key generator is required")
	}
	return &SortBlocksMiddleware{cfg: cfg}, nil
}

// Transform sorts the library's blocks. With in-place modification the
// input library is returned with its sequence reordered; otherwise the
// blocks are deep-copied first and a new library wraps the result.
func (m *SortBlocksMiddleware) Transform(lib *bib.Library) (*bib.Library, error) {
	blocks := lib.Blocks()
	inplace := m.cfg.AllowInplaceModification
	if !inplace {
		blocks = bib.CopyBlocks(blocks)
	}

	if m.cfg.PreserveCommentsOnTop {
		sorted, err := m.sortJunked(blocks)
		if err != nil {
			logging.TransformError("sort_blocks", err)
			return nil, err
		}
		blocks = sorted
	} else {
		keys := make([]sortkey.Key, len(blocks))
		for i, b := range blocks {
			keys[i] = m.cfg.Key(b)
		}
		blocks = stableByKey(blocks, keys, m.cfg.Reverse)
	}

	logging.TransformEvent("sort_blocks", len(blocks),
		"inplace", inplace,
		"junked", m.cfg.PreserveCommentsOnTop,
		"reverse", m.cfg.Reverse)

	if inplace {
		lib.ReplaceBlocks(blocks)
		return lib, nil
	}
	return bib.New(blocks), nil
}

// sortJunked groups blocks into junks, sorts the junks by the key of each
// main block, and flattens the result. A trailing comment-only junk has no
// main block to key on; it is pinned after the sorted junks instead of
// being keyed by an arbitrary comment.
func (m *SortBlocksMiddleware) sortJunked(blocks []bib.Block) ([]bib.Block, error) {
	junks := gatherJunks(blocks)

	var trailing []junk
	if n := len(junks); n > 0 && !junks[n-1].hasMainBlock() {
		trailing = junks[n-1:]
		junks = junks[:n-1]
	}

	keys := make([]sortkey.Key, len(junks))
	for i := range junks {
		main, err := junks[i].mainBlock()
		if err != nil {
			return nil, err
		}
		keys[i] = m.cfg.Key(main)
	}
	junks = stableByKey(junks, keys, m.cfg.Reverse)
	junks = append(junks, trailing...)

	return flattenJunks(junks, len(blocks)), nil
}

// stableByKey stable-sorts items by pre-computed keys. Keys are generated
// exactly once per item so generator purity is observable and the sort
// costs O(n log n) comparisons.
func stableByKey[T any](items []T, keys []sortkey.Key, reverse bool) []T {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		c := keys[idx[a]].Compare(keys[idx[b]])
		if reverse {
			return c > 0
		}
		return c < 0
	})

	out := make([]T, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// SortByTypeAndKeyConfig configures the ready-made "sort by type, then by
// entry type and citation key" middleware.
type SortByTypeAndKeyConfig struct {
	// Order overrides the default block type order (sortkey.DefaultTypeOrder).
	Order []bib.BlockType

	// PreserveCommentsOnTop keeps leading comments attached to the block
	// that follows them.
	PreserveCommentsOnTop bool

	// AllowInplaceModification reorders the input library itself. The
	// preset defaults to copy-on-write.
	AllowInplaceModification bool
}

// DefaultSortByTypeAndKeyConfig returns the preset defaults: default type
// order, comments preserved, copy-on-write.
func DefaultSortByTypeAndKeyConfig() SortByTypeAndKeyConfig {
	return SortByTypeAndKeyConfig{
		PreserveCommentsOnTop: true,
	}
}

// NewSortByTypeAndKey creates the built-in sorter: blocks ordered by type
// rank, entries tie-broken by (entry type, citation key) lexicographically.
func NewSortByTypeAndKey(cfg SortByTypeAndKeyConfig) *SortBlocksMiddleware {
	key := sortkey.TypeKey(sortkey.TypeKeyConfig{
		Order: cfg.Order,
		SubKeys: map[bib.BlockType]sortkey.Gen{
			bib.BlockTypeEntry: sortkey.Lexicographic(
				sortkey.ByEntryType(),
				sortkey.ByCitationKey(),
			),
		},
		FallbackRank: -1,
	})
	return &SortBlocksMiddleware{cfg: SortBlocksConfig{
		Key:                      key,
		PreserveCommentsOnTop:    cfg.PreserveCommentsOnTop,
		AllowInplaceModification: cfg.AllowInplaceModification,
	}}
}
