package domain

import "time"

// ResultSet - одна страница результатов. Docs и Scores идут параллельно.
type ResultSet struct {
	Length     int
	Docs       []Document
	Scores     []float64
	Start      time.Time
	SearchTime float64 // seconds
}

func (r *ResultSet) Empty() bool {
	return len(r.Docs) == 0
}

// Hit pairs a document with its normalized score.
type Hit struct {
	Doc   Document
	Score float64
}

func (r *ResultSet) Hits() []Hit {
	hits := make([]Hit, len(r.Docs))
	for i, d := range r.Docs {
		hits[i] = Hit{Doc: d}
		if i < len(r.Scores) {
			hits[i].Score = r.Scores[i]
		}
	}
	return hits
}
