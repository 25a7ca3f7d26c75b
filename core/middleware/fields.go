package middleware

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/Bibliograph/core/bib"
	"github.com/FocuswithJustin/Bibliograph/internal/logging"
)

// SortEntryFieldsConfig configures a SortEntryFieldsMiddleware.
type SortEntryFieldsConfig struct {
	// Order is a custom field order (e.g. "title", "author", "year").
	// Fields not listed keep their relative order after the listed ones.
	// Empty means alphabetical.
	Order []string

	// CaseSensitive compares field names byte-wise instead of folding
	// them to lower case. Only used for alphabetical sorting.
	CaseSensitive bool

	// AllowInplaceModification mutates the input library's entries.
	// When false the input is left untouched and a new library is
	// returned.
	AllowInplaceModification bool
}

// SortEntryFieldsMiddleware sorts the field list of every entry, either
// alphabetically or by a custom field order. Block order is unchanged.
type SortEntryFieldsMiddleware struct {
	cfg SortEntryFieldsConfig
}

// NewSortEntryFields creates an entry-field-sorting middleware.
func NewSortEntryFields(cfg SortEntryFieldsConfig) *SortEntryFieldsMiddleware {
	return &SortEntryFieldsMiddleware{cfg: cfg}
}

// Transform sorts the fields of each entry in the library.
func (m *SortEntryFieldsMiddleware) Transform(lib *bib.Library) (*bib.Library, error) {
	blocks := lib.Blocks()
	inplace := m.cfg.AllowInplaceModification
	if !inplace {
		blocks = bib.CopyBlocks(blocks)
	}

	entries := 0
	for _, b := range blocks {
		e, ok := b.(*bib.Entry)
		if !ok {
			continue
		}
		m.sortFields(e)
		entries++
	}

	logging.TransformEvent("sort_entry_fields", len(blocks),
		"entries", entries,
		"inplace", inplace)

	if inplace {
		return lib, nil
	}
	return bib.New(blocks), nil
}

func (m *SortEntryFieldsMiddleware) sortFields(e *bib.Entry) {
	if len(m.cfg.Order) > 0 {
		rank := make(map[string]int, len(m.cfg.Order))
		for i, name := range m.cfg.Order {
			if _, ok := rank[name]; !ok {
				rank[name] = i
			}
		}
		fallback := len(m.cfg.Order)
		sort.SliceStable(e.Fields, func(a, b int) bool {
			ra, ok := rank[e.Fields[a].Key]
			if !ok {
				ra = fallback
			}
			rb, ok := rank[e.Fields[b].Key]
			if !ok {
				rb = fallback
			}
			return ra < rb
		})
		return
	}

	sort.SliceStable(e.Fields, func(a, b int) bool {
		ka, kb := e.Fields[a].Key, e.Fields[b].Key
		if !m.cfg.CaseSensitive {
			ka, kb = strings.ToLower(ka), strings.ToLower(kb)
		}
		return ka < kb
	})
}
