package domain

import (
	"strings"
)

const MaxQueryLength = 4000

// All - sentinel для start/end: вернуть все совпадения.
const All = -1

// Query - выражение на языке движка. Для нас это просто строка.
type Query interface {
	String() string
}

// RawQuery передается движку как есть.
type RawQuery string

func (q RawQuery) String() string {
	return string(q)
}

type Sort struct {
	FieldName string
	Reverse   bool
}

// Order returns the engine keyword for the sort direction.
func (s Sort) Order() string {
	if s.Reverse {
		return "desc"
	}
	return "asc"
}

type SearchRequest struct {
	CompanyID int64
	Query     Query
	Sorts     []Sort
	Start     int
	End       int
}

// AllResults reports whether the request asks for every match.
func (r *SearchRequest) AllResults() bool {
	return r.Start == All && r.End == All
}

func (r *SearchRequest) Validate() error {
	if r.Query == nil || strings.TrimSpace(r.Query.String()) == "" {
		return ErrEmptyQuery
	}

	if len(r.Query.String()) > MaxQueryLength {
		return ErrQueryTooLong
	}

	if err := r.ValidateRange(); err != nil {
		return err
	}

	for _, s := range r.Sorts {
		if strings.TrimSpace(s.FieldName) == "" {
			return ErrEmptySort
		}
	}

	return nil
}

// ValidateRange checks the [Start, End) window. The All pair is always valid.
func (r *SearchRequest) ValidateRange() error {
	if r.AllResults() {
		return nil
	}
	if r.Start < 0 || r.End < r.Start {
		return ErrInvalidRange
	}
	return nil
}
