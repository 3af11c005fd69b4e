package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-ranker/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div class="sidebar">Other jobs</div>
<div class="job-description"><h2>Backend Engineer</h2><p>We need Go,   PostgreSQL and Docker.</p></div>
<form>Apply</form>
</body></html>`))
	}))
	defer server.Close()

	job, err := JobFromURL(context.Background(), server.URL+"/jobs/1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, fetch.PlatformUnknown, job.Platform)
	assert.Equal(t, "Backend Engineer\nWe need Go, PostgreSQL and Docker.", job.Text)
}

func TestJobFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := JobFromURL(context.Background(), server.URL, nil, nil)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestJobFromURL_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>x()</script></body></html>`))
	}))
	defer server.Close()

	_, err := JobFromURL(context.Background(), server.URL, nil, nil)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}
