package solr

import (
	"strconv"
	"strings"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

const (
	paramQuery  = "q"
	paramFields = "fl"
	paramStart  = "start"
	paramRows   = "rows"
	paramSort   = "sort"
)

// BuildURL turns req into a select URL rooted at baseURL. The second return
// value is true for the all-results probe (rows=0), which the resolver expands
// once the total is known. BuildURL does no I/O and is deterministic.
func BuildURL(baseURL string, req domain.SearchRequest) (string, bool, error) {
	if req.Query == nil {
		return "", false, domain.ErrEmptyQuery
	}
	if err := req.ValidateRange(); err != nil {
		return "", false, err
	}

	u := addParameter(baseURL, paramQuery, req.Query.String())
	u = addParameter(u, paramFields, domain.ScoreField)

	allResults := false
	if req.AllResults() {
		u = addParameter(u, paramRows, "0")
		allResults = true
	} else {
		u = addParameter(u, paramStart, strconv.Itoa(req.Start))
		u = addParameter(u, paramRows, strconv.Itoa(req.End-req.Start))
	}

	if len(req.Sorts) > 0 {
		u = addParameter(u, paramSort, sortValue(req.Sorts))
	}

	return u, allResults, nil
}

// sortValue renders "field asc,other desc" in the caller's order.
func sortValue(sorts []domain.Sort) string {
	var sb strings.Builder
	for i, s := range sorts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s.FieldName)
		sb.WriteByte(' ')
		sb.WriteString(s.Order())
	}
	return sb.String()
}
