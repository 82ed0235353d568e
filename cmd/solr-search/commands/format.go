package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

type jsonHit struct {
	Score  float64           `json:"score"`
	Fields map[string]string `json:"fields"`
}

type jsonResultSet struct {
	Query      string    `json:"query,omitempty"`
	Length     int       `json:"length"`
	Start      time.Time `json:"start"`
	SearchTime float64   `json:"search_time"`
	Hits       []jsonHit `json:"hits"`
}

func toJSON(query string, rs *domain.ResultSet) jsonResultSet {
	out := jsonResultSet{
		Query:      query,
		Length:     rs.Length,
		Start:      rs.Start,
		SearchTime: rs.SearchTime,
		Hits:       make([]jsonHit, 0, len(rs.Docs)),
	}
	for _, h := range rs.Hits() {
		out.Hits = append(out.Hits, jsonHit{Score: h.Score, Fields: h.Doc.Map()})
	}
	return out
}

func WriteJSON(w io.Writer, query string, rs *domain.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(query, rs))
}

// WriteText prints one line per hit: rank, normalized score and fields
// sorted by name. The raw score field is left out.
func WriteText(w io.Writer, rs *domain.ResultSet) error {
	if _, err := fmt.Fprintf(w, "%d of %d results (%.3fs)\n", len(rs.Docs), rs.Length, rs.SearchTime); err != nil {
		return err
	}

	for i, h := range rs.Hits() {
		parts := make([]string, 0, h.Doc.Len())
		for _, name := range h.Doc.Names() {
			if name == domain.ScoreField {
				continue
			}
			parts = append(parts, name+"="+h.Doc.Get(name))
		}
		if _, err := fmt.Fprintf(w, "%3d. [%.4f] %s\n", i+1, h.Score, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
