package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

// Client is an in-memory search.Searcher that records every request.
type Client struct {
	Result *domain.ResultSet
	Error  error
	Delay  time.Duration

	// Respond, when set, wins over Result and Error.
	Respond func(req domain.SearchRequest) (*domain.ResultSet, error)

	CallCount   int
	LastRequest domain.SearchRequest
	AllRequests []domain.SearchRequest

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResult(rs *domain.ResultSet) *Client {
	c.Result = rs
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) WithResponder(fn func(req domain.SearchRequest) (*domain.ResultSet, error)) *Client {
	c.Respond = fn
	return c
}

func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	delay := c.Delay
	err := c.Error
	result := c.Result
	respond := c.Respond
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if respond != nil {
		return respond(req)
	}

	if err != nil {
		return nil, err
	}

	if result == nil {
		return &domain.ResultSet{Start: time.Now()}, nil
	}

	return result, nil
}

func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = domain.SearchRequest{}
	c.AllRequests = nil
}
