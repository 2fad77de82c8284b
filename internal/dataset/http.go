package dataset

import (
	"context"
	"strings"

	httpclient "civic-relevance-workers/internal/common/http"
)

// HTTPSource fetches the two documents relative to BaseURL.
type HTTPSource struct {
	client       *httpclient.Client
	baseURL      string
	profilesPath string
	issuesPath   string
}

func NewHTTPSource(client *httpclient.Client, baseURL, profilesPath, issuesPath string) *HTTPSource {
	return &HTTPSource{
		client:       client,
		baseURL:      strings.TrimRight(baseURL, "/"),
		profilesPath: strings.TrimLeft(profilesPath, "/"),
		issuesPath:   strings.TrimLeft(issuesPath, "/"),
	}
}

func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) Load(ctx context.Context) (*Dataset, error) {
	return fetchBoth(ctx, s.fetch(s.profilesPath), s.fetch(s.issuesPath))
}

func (s *HTTPSource) fetch(path string) fetchFunc {
	url := s.baseURL + "/" + path
	return func(ctx context.Context) ([]byte, error) {
		return s.client.Fetch(ctx, url)
	}
}
