package solr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/kitbuilder587/solr-search/internal/domain"
	"github.com/kitbuilder587/solr-search/internal/search"
)

const (
	resultElement = "result"
	attrNumFound  = "numFound"
	attrMaxScore  = "maxScore"
	attrFieldName = "name"
)

type response struct {
	numFound int
	maxScore float64
	result   *etree.Element
}

func parseResponse(body string) (*response, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: empty body", search.ErrMalformedResponse)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrParse, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", search.ErrMalformedResponse)
	}

	resultEl := root.SelectElement(resultElement)
	if resultEl == nil {
		return nil, fmt.Errorf("%w: <%s> has no <%s> element", search.ErrMalformedResponse, root.Tag, resultElement)
	}

	return &response{
		numFound: parseInt(resultEl.SelectAttrValue(attrNumFound, "")),
		maxScore: parseFloat(resultEl.SelectAttrValue(attrMaxScore, "")),
		result:   resultEl,
	}, nil
}

// documents maps every child of <result> to a document and every child of a
// document to a non-tokenized field.
func (r *response) documents() ([]domain.Document, error) {
	docEls := r.result.ChildElements()
	docs := make([]domain.Document, 0, len(docEls))

	for i, docEl := range docEls {
		doc := domain.NewDocument()

		for _, fieldEl := range docEl.ChildElements() {
			name := fieldEl.SelectAttr(attrFieldName)
			if name == nil {
				return nil, fmt.Errorf("%w: document %d has <%s> without name", search.ErrMalformedResponse, i, fieldEl.Tag)
			}
			doc.Add(domain.Field{
				Name:      name.Value,
				Value:     fieldEl.Text(),
				Tokenized: false,
			})
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// normalizeScore divides by maxScore. Zero or non-finite input yields 0.
func normalizeScore(score, maxScore float64) float64 {
	if maxScore == 0 || math.IsNaN(maxScore) || math.IsInf(maxScore, 0) {
		return 0
	}
	n := score / maxScore
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// bad or missing numbers read as zero
func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
