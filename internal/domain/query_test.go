package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchRequest
		wantErr error
	}{
		{"ok", SearchRequest{CompanyID: 1, Query: RawQuery("title:go"), Start: 0, End: 20}, nil},
		{"all results", SearchRequest{Query: RawQuery("*:*"), Start: All, End: All}, nil},
		{"nil query", SearchRequest{Start: 0, End: 20}, ErrEmptyQuery},
		{"empty", SearchRequest{Query: RawQuery(""), Start: 0, End: 20}, ErrEmptyQuery},
		{"whitespace", SearchRequest{Query: RawQuery("   "), Start: 0, End: 20}, ErrEmptyQuery},
		{"max len", SearchRequest{Query: RawQuery(strings.Repeat("a", MaxQueryLength)), Start: 0, End: 1}, nil},
		{"too long", SearchRequest{Query: RawQuery(strings.Repeat("a", MaxQueryLength+1)), Start: 0, End: 1}, ErrQueryTooLong},
		{"end before start", SearchRequest{Query: RawQuery("x"), Start: 10, End: 5}, ErrInvalidRange},
		{"negative start", SearchRequest{Query: RawQuery("x"), Start: -2, End: 5}, ErrInvalidRange},
		{"only start is All", SearchRequest{Query: RawQuery("x"), Start: All, End: 5}, ErrInvalidRange},
		{"empty window", SearchRequest{Query: RawQuery("x"), Start: 5, End: 5}, nil},
		{"empty sort field", SearchRequest{Query: RawQuery("x"), Sorts: []Sort{{FieldName: " "}}, Start: 0, End: 5}, ErrEmptySort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SearchRequest.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchRequest_AllResults(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"both All", All, All, true},
		{"window", 0, 10, false},
		{"start only", All, 10, false},
		{"end only", 0, All, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SearchRequest{Start: tt.start, End: tt.end}
			if got := req.AllResults(); got != tt.want {
				t.Errorf("AllResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort_Order(t *testing.T) {
	if got := (Sort{FieldName: "a"}).Order(); got != "asc" {
		t.Errorf("Order() = %q, want asc", got)
	}
	if got := (Sort{FieldName: "a", Reverse: true}).Order(); got != "desc" {
		t.Errorf("Order() = %q, want desc", got)
	}
}

func TestRawQuery_String(t *testing.T) {
	q := RawQuery(`+entryClassName:BlogsEntry +(title:go content:go)`)
	if q.String() != `+entryClassName:BlogsEntry +(title:go content:go)` {
		t.Errorf("String() = %q", q.String())
	}
}
