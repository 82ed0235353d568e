package mock

import (
	"context"
	"testing"
	"time"

	"github.com/kitbuilder587/solr-search/internal/domain"
	"github.com/kitbuilder587/solr-search/internal/search"
)

func TestMockClient_Search(t *testing.T) {
	doc := domain.NewDocument()
	doc.Add(domain.Field{Name: "id", Value: "1"})

	client := New().WithResult(&domain.ResultSet{Length: 1, Docs: []domain.Document{doc}, Scores: []float64{1}})

	rs, err := client.Search(context.Background(), domain.SearchRequest{Query: domain.RawQuery("test")})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if rs.Length != 1 || len(rs.Docs) != 1 {
		t.Errorf("Search() got %d docs (length %d), want 1", len(rs.Docs), rs.Length)
	}
}

func TestMockClient_EmptyByDefault(t *testing.T) {
	rs, err := New().Search(context.Background(), domain.SearchRequest{Query: domain.RawQuery("test")})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !rs.Empty() {
		t.Errorf("Search() = %+v, want empty result set", rs)
	}
}

func TestMockClient_Error(t *testing.T) {
	wantErr := &search.SearchError{Op: "solr", Err: search.ErrTransport}
	client := New().WithError(wantErr)

	_, err := client.Search(context.Background(), domain.SearchRequest{Query: domain.RawQuery("test")})
	if err != wantErr {
		t.Errorf("Search() error = %v, want %v", err, wantErr)
	}
}

func TestMockClient_Responder(t *testing.T) {
	client := New().WithResponder(func(req domain.SearchRequest) (*domain.ResultSet, error) {
		return &domain.ResultSet{Length: req.End - req.Start}, nil
	})

	rs, err := client.Search(context.Background(), domain.SearchRequest{Query: domain.RawQuery("x"), Start: 5, End: 12})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rs.Length != 7 {
		t.Errorf("Length = %d, want 7", rs.Length)
	}
}

func TestMockClient_Delay(t *testing.T) {
	client := New().WithDelay(50 * time.Millisecond)

	start := time.Now()
	_, err := client.Search(context.Background(), domain.SearchRequest{Query: domain.RawQuery("test")})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if elapsed < 50*time.Millisecond {
		t.Errorf("Search() elapsed = %v, want >= 50ms", elapsed)
	}
}

func TestMockClient_ContextCancellation(t *testing.T) {
	client := New().WithDelay(1 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, domain.SearchRequest{Query: domain.RawQuery("test")})
	if err != context.DeadlineExceeded {
		t.Errorf("Search() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestMockClient_Records(t *testing.T) {
	client := New()

	client.Search(context.Background(), domain.SearchRequest{CompanyID: 1, Query: domain.RawQuery("a")})
	client.Search(context.Background(), domain.SearchRequest{CompanyID: 2, Query: domain.RawQuery("b")})

	if client.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", client.Calls())
	}
	if client.LastRequest.CompanyID != 2 {
		t.Errorf("LastRequest.CompanyID = %d, want 2", client.LastRequest.CompanyID)
	}
	if len(client.AllRequests) != 2 {
		t.Errorf("AllRequests = %d, want 2", len(client.AllRequests))
	}

	client.Reset()
	if client.Calls() != 0 || client.AllRequests != nil {
		t.Error("Reset() did not clear recorded calls")
	}
}
