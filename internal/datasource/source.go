// Package datasource supplies candidate options to the combobox engine.
//
// A Source answers a search term with a list of options. Static sources
// filter a fixed list on the client and never load; remote sources (HTTP,
// SQLite) are queried by the engine with sequence-tagged requests so that a
// late response for an outdated term is dropped rather than cancelled.
package datasource

import (
	"context"
	"fmt"
	"time"

	"formbox/internal/debug"
	appErrors "formbox/internal/errors"
	"formbox/internal/option"
)

var logf = debug.Component("datasource")

// Source answers a search term with candidate options.
type Source interface {
	Query(ctx context.Context, term string) ([]option.Option, error)
}

// Remote reports whether src must be queried asynchronously. Static sources
// are filtered inline.
func Remote(src Source) bool {
	_, static := src.(*Static)
	return src != nil && !static
}

// Static filters a fixed option list on the client.
type Static struct {
	opts  []option.Option
	match option.Match
}

// NewStatic returns a client-filtered source over opts. Duplicate values are
// dropped, keeping the first occurrence.
func NewStatic(opts []option.Option, match option.Match) *Static {
	return &Static{opts: option.Dedupe(option.Clone(opts)), match: match}
}

// Options returns a copy of the full list.
func (s *Static) Options() []option.Option {
	return option.Clone(s.opts)
}

// Match reports the filtering mode.
func (s *Static) Match() option.Match {
	return s.match
}

// Query filters the list synchronously. It never fails.
func (s *Static) Query(_ context.Context, term string) ([]option.Option, error) {
	return option.Apply(s.match, s.opts, term), nil
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context, term string) ([]option.Option, error)

// Query calls f.
func (f Func) Query(ctx context.Context, term string) ([]option.Option, error) {
	return f(ctx, term)
}

// Fetch runs a single query against src bounded by timeout. Failures are
// wrapped with errors.CodeRemoteTimeout when the deadline expired and
// errors.CodeRemoteFetch otherwise. Returned options are deduplicated by
// value.
func Fetch(ctx context.Context, src Source, term string, timeout time.Duration) ([]option.Option, error) {
	if src == nil {
		return nil, appErrors.New(appErrors.CodeRemoteFetch, "query options", fmt.Errorf("no data source"))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	opts, err := src.Query(ctx, term)
	if err != nil {
		logf("query %q failed after %s: %v", term, time.Since(start), err)
		if appErrors.CodeOf(err) != appErrors.CodeUnknown {
			return nil, err
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, appErrors.New(appErrors.CodeRemoteTimeout, fmt.Sprintf("query %q", term), err)
		}
		return nil, appErrors.New(appErrors.CodeRemoteFetch, fmt.Sprintf("query %q", term), err)
	}
	logf("query %q returned %d options in %s", term, len(opts), time.Since(start))
	return option.Dedupe(opts), nil
}
