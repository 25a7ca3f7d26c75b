package middleware

import (
	"testing"

	"github.com/FocuswithJustin/Bibliograph/core/bib"
	"github.com/FocuswithJustin/Bibliograph/core/errors"
	"github.com/FocuswithJustin/Bibliograph/core/sortkey"
)

func entry(entryType, key string) *bib.Entry {
	return &bib.Entry{EntryType: entryType, Key: key}
}

func comment(text string) *bib.ImplicitComment {
	return &bib.ImplicitComment{Comment: text}
}

// keysOf extracts citation keys and comment texts, in order, for
// asserting block order compactly.
func keysOf(blocks []bib.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		switch v := b.(type) {
		case *bib.Entry:
			out[i] = v.Key
		case *bib.ImplicitComment:
			out[i] = v.Comment
		case *bib.ExplicitComment:
			out[i] = v.Comment
		case *bib.String:
			out[i] = "@string:" + v.Key
		case *bib.Preamble:
			out[i] = "@preamble"
		}
	}
	return out
}

func assertOrder(t *testing.T, blocks []bib.Block, want []string) {
	t.Helper()
	got := keysOf(blocks)
	if len(got) != len(want) {
		t.Fatalf("block count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestNewSortBlocksRequiresKey(t *testing.T) {
	_, err := NewSortBlocks(DefaultSortBlocksConfig())
	if err == nil {
		t.Fatal("NewSortBlocks accepted a config without a key")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error does not wrap ErrInvalidInput: %v", err)
	}
}

func TestSortBlocksFlat(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	cfg.PreserveCommentsOnTop = false
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{
		entry("article", "charlie"),
		entry("article", "alpha"),
		entry("article", "bravo"),
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"alpha", "bravo", "charlie"})
}

func TestSortBlocksCommentAdjacency(t *testing.T) {
	// Comments stay attached to the following block when sorting
	// descending by citation key.
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.Reversed(sortkey.ByCitationKey())
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{
		comment("c1"),
		entry("article", "a"),
		comment("c2"),
		entry("article", "b"),
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"c2", "b", "c1", "a"})
}

func TestSortBlocksReverseFlag(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	cfg.Reverse = true
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{
		comment("c1"),
		entry("article", "a"),
		comment("c2"),
		entry("article", "b"),
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"c2", "b", "c1", "a"})
}

func TestSortBlocksStability(t *testing.T) {
	// Equal keys: relative input order is preserved.
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByEntryType()
	cfg.PreserveCommentsOnTop = false
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{
		entry("book", "first"),
		entry("article", "x"),
		entry("book", "second"),
		entry("book", "third"),
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"x", "first", "second", "third"})
}

func TestSortBlocksIdempotent(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{
		comment("c"),
		entry("article", "b"),
		entry("article", "a"),
	})
	once, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	want := keysOf(once.Blocks())

	twice, err := m.Transform(once)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, twice.Blocks(), want)
}

func TestSortBlocksInplace(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	a, b := entry("article", "b"), entry("article", "a")
	lib := bib.New([]bib.Block{a, b})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if out != lib {
		t.Error("in-place sort returned a different library handle")
	}
	// The original handle reflects the new order, with the same blocks.
	if lib.Blocks()[0] != b || lib.Blocks()[1] != a {
		t.Error("in-place sort did not reorder the original sequence")
	}
}

func TestSortBlocksCopy(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	cfg.AllowInplaceModification = false
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	a, b := entry("article", "b"), entry("article", "a")
	lib := bib.New([]bib.Block{a, b})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if out == lib {
		t.Fatal("copying sort returned the input library handle")
	}
	if out.ID() == lib.ID() {
		t.Error("copying sort reused the input library ID")
	}
	// Original sequence is untouched, by identity.
	if lib.Blocks()[0] != a || lib.Blocks()[1] != b {
		t.Error("copying sort mutated the original sequence")
	}
	// Output order is correct and made of copies, not the originals.
	assertOrder(t, out.Blocks(), []string{"a", "b"})
	for i, blk := range out.Blocks() {
		if blk == a || blk == b {
			t.Errorf("output block %d aliases an input block", i)
		}
	}
}

func TestSortBlocksTrailingCommentsPinned(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{
		entry("article", "b"),
		entry("article", "a"),
		comment("eof1"),
		comment("eof2"),
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"a", "b", "eof1", "eof2"})
}

func TestSortBlocksAllComments(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	lib := bib.New([]bib.Block{comment("c1"), comment("c2")})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"c1", "c2"})
}

func TestSortBlocksEmpty(t *testing.T) {
	cfg := DefaultSortBlocksConfig()
	cfg.Key = sortkey.ByCitationKey()
	m, err := NewSortBlocks(cfg)
	if err != nil {
		t.Fatalf("NewSortBlocks failed: %v", err)
	}

	out, err := m.Transform(bib.New(nil))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Len = %d, want 0", out.Len())
	}
}

func TestSortByTypeAndKey(t *testing.T) {
	m := NewSortByTypeAndKey(DefaultSortByTypeAndKeyConfig())

	lib := bib.New([]bib.Block{
		entry("book", "knuth1997"),
		comment("about strings"),
		&bib.String{Key: "jan", Value: "January"},
		entry("article", "bbb"),
		entry("article", "aaa"),
		&bib.Preamble{Value: "\\makeatletter"},
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Strings, then preambles, then entries ordered by
	// (entry type, citation key); the comment rides with its string.
	assertOrder(t, out.Blocks(), []string{
		"about strings",
		"@string:jan",
		"@preamble",
		"aaa",
		"bbb",
		"knuth1997",
	})

	// The preset is copy-on-write: the input order is untouched.
	assertOrder(t, lib.Blocks(), []string{
		"knuth1997",
		"about strings",
		"@string:jan",
		"bbb",
		"aaa",
		"@preamble",
	})
}

func TestSortByTypeAndKeyDefaultTypeOrder(t *testing.T) {
	// Input order Entry, ImplicitComment, String sorts to
	// String, Entry, ImplicitComment under the default type order.
	cfg := DefaultSortByTypeAndKeyConfig()
	cfg.PreserveCommentsOnTop = false
	m := NewSortByTypeAndKey(cfg)

	lib := bib.New([]bib.Block{
		entry("article", "a"),
		comment("c"),
		&bib.String{Key: "s", Value: "v"},
	})
	out, err := m.Transform(lib)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	assertOrder(t, out.Blocks(), []string{"@string:s", "a", "c"})
}
