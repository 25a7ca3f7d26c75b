// Package middleware provides transforms over bibliographic libraries.
//
// A middleware takes a Library and returns a (possibly new) Library.
// Middlewares either operate in place, returning the same handle with its
// block sequence replaced, or copy-on-write, leaving the input untouched
// and returning a freshly constructed Library. Which of the two applies is
// part of each middleware's configuration.
package middleware

import (
	"github.com/FocuswithJustin/Bibliograph/core/bib"
	"github.com/FocuswithJustin/Bibliograph/core/errors"
	"github.com/FocuswithJustin/Bibliograph/internal/logging"
)

// LibraryMiddleware transforms a whole library.
type LibraryMiddleware interface {
	// Transform applies the middleware. Implementations must document
	// whether they mutate the input library or return a copy.
	Transform(lib *bib.Library) (*bib.Library, error)
}

// Pipeline applies a sequence of middlewares in order, feeding each
// middleware's output into the next. The first error aborts the run.
type Pipeline struct {
	middlewares []LibraryMiddleware
}

// NewPipeline creates a pipeline from the given middlewares.
func NewPipeline(mws ...LibraryMiddleware) *Pipeline {
	return &Pipeline{middlewares: mws}
}

// Run applies all middlewares to the library.
func (p *Pipeline) Run(lib *bib.Library) (*bib.Library, error) {
	var err error
	for i, mw := range p.middlewares {
		lib, err = mw.Transform(lib)
		if err != nil {
			logging.TransformError("pipeline", err, "step", i)
			return nil, errors.Wrapf(err, "pipeline step %d", i)
		}
	}
	return lib, nil
}
