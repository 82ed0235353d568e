package search

import (
	"context"
	"errors"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

var (
	ErrTransport         = errors.New("transport failure")
	ErrParse             = errors.New("response is not well-formed xml")
	ErrMalformedResponse = errors.New("unexpected response structure")
)

type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error)
}

// SearchError wraps every failure of a search call. Callers get either a
// complete result set or a *SearchError, never partial results.
type SearchError struct {
	Op  string
	Err error
}

func (e *SearchError) Error() string {
	if e.Op == "" {
		return "search: " + e.Err.Error()
	}
	return "search: " + e.Op + ": " + e.Err.Error()
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a *SearchError. Already wrapped errors pass through.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *SearchError
	if errors.As(err, &se) {
		return err
	}
	return &SearchError{Op: op, Err: err}
}
