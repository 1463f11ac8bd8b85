package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smm-course-search/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(resultsPage([]string{"A"})))
	}))
	defer server.Close()

	tel := &telemetry.RecordingAPI{}
	fetcher := NewHTTPFetcher(HTTPOptions{Timeout: 5 * time.Second}, tel)

	status, body, err := fetcher.Fetch(context.Background(), server.URL+"/search/result?page=1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "search-results")

	status, _, err = fetcher.Fetch(context.Background(), server.URL+"/search/result?page=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, status)

	require.NotEmpty(t, tel.Reports("debug"))
}

func TestHTTPFetcherWithSearcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(resultsPage(pageIds(1, 2))))
		default:
			_, _ = w.Write([]byte(resultsPage(nil)))
		}
	}))
	defer server.Close()

	tel := &telemetry.RecordingAPI{}
	fetcher := NewHTTPFetcher(HTTPOptions{RequestsPerSecond: 100}, tel)
	searcher := newTestSearcher(fetcher)
	searcher.translator = newServerTranslator(server.URL, tel)

	found, err := searcher.GetInfinity(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, pageIds(1, 2), ids(found))
}

func TestHTTPFetcherCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(HTTPOptions{}, &telemetry.RecordingAPI{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fetcher.Fetch(ctx, server.URL)
	require.Error(t, err)
}

type pageDump struct {
	ids []string
}

func (d *pageDump) Write(id string, contents []byte) {
	d.ids = append(d.ids, id)
}

func TestHTTPFetcherDump(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage(nil)))
	}))
	defer server.Close()

	dump := &pageDump{}
	fetcher := NewHTTPFetcher(HTTPOptions{Dump: dump}, &telemetry.RecordingAPI{})

	_, _, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, []string{"0001.http", "0001.html"}, dump.ids)
}
