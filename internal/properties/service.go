package properties

import (
	"context"
	"net/url"
	"strconv"

	"github.com/FarhanAlam-Official/GharSaathi/internal/api"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/metrics"
)

// apiClient is the slice of the HTTP client the service needs.
type apiClient interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

var _ apiClient = (*api.Client)(nil)

// Service fetches listings from the backend. When the dedicated search
// endpoint is unavailable it degrades to client-side filtering over a bounded
// unfiltered fetch, invisibly to the caller.
type Service struct {
	client apiClient
}

func NewService(client apiClient) *Service {
	return &Service{client: client}
}

// List fetches one unfiltered page. sortBy and sortDirection may be empty.
func (s *Service) List(ctx context.Context, page, size int, sortBy, sortDirection string) (ListResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sortBy != "" {
		q.Set("sortBy", sortBy)
	}
	if sortDirection != "" {
		q.Set("sortDirection", sortDirection)
	}
	var out ListResult
	if err := s.client.Get(ctx, "/properties", q, &out); err != nil {
		return ListResult{}, err
	}
	return out, nil
}

// Get fetches a single listing by id.
func (s *Service) Get(ctx context.Context, id int64) (Property, error) {
	var out Property
	if err := s.client.Get(ctx, "/properties/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return Property{}, err
	}
	return out, nil
}

// SearchRemote runs the criteria through the server-side search endpoint.
func (s *Service) SearchRemote(ctx context.Context, c SearchCriteria) (ListResult, error) {
	var out ListResult
	if err := s.client.Post(ctx, "/properties/search", c, &out); err != nil {
		return ListResult{}, err
	}
	return out, nil
}

// Search tries the server-side search first and silently falls back to
// client-side filtering when it fails: a bounded unfiltered fetch, the same
// filter pipeline the server applies, then local pagination. The fallback
// always produces the first page. Only when both paths fail is an error
// returned, and it is the fallback's error.
func (s *Service) Search(ctx context.Context, c SearchCriteria) (ListResult, error) {
	if c.Size <= 0 {
		c.Size = DefaultPageSize
	}
	res, err := s.SearchRemote(ctx, c)
	if err == nil {
		return res, nil
	}
	logger.Warnf("properties: search endpoint failed, falling back to client-side filtering: %v", err)
	metrics.SearchFallbacks.Inc()

	all, err := s.List(ctx, 0, fallbackFetchSize, c.SortBy, c.SortDirection)
	if err != nil {
		return ListResult{}, err
	}
	filtered := FilterProperties(all.Properties, c)
	return Paginate(filtered, 0, c.Size), nil
}
