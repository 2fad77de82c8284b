package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpclient "civic-relevance-workers/internal/common/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Load(t *testing.T) {
	profiles, issues := readFixture(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wiki/profiles.json":
			_, _ = w.Write(profiles)
		case "/wiki/issues.json":
			_, _ = w.Write(issues)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := httpclient.NewClient(2 * time.Second)

	src := NewHTTPSource(client, srv.URL+"/wiki/", "/profiles.json", "issues.json")
	assert.Equal(t, "http", src.Name())

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Profiles, 4)
	assert.Len(t, ds.Issues, 2)

	_, err = NewHTTPSource(client, srv.URL, "profiles.json", "issues.json").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
