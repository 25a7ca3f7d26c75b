// Package bib defines the bibliographic document model used throughout
// Bibliograph.
//
// A document is an ordered sequence of typed blocks: entries, string macro
// definitions, preambles, and comments (implicit or explicit). Blocks are
// owned by a Library, which is the only container transforms operate on.
// Block types form an explicit declared hierarchy (every comment variant
// descends from the abstract COMMENT type), which transforms use to resolve
// type-based dispatch without reflection.
//
// All transforms in core/middleware consume and produce Library values;
// this package deliberately knows nothing about BibTeX syntax or I/O.
package bib
