package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		PopularSubject: "subject:fiction",
		Logger:         zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("books.example.test/v1/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/v1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_SearchEncodesQueryAndDecodesItems(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(volumeListResponse{
			TotalItems: 1,
			Items: []Volume{{
				ID: "abc",
				VolumeInfo: VolumeInfo{
					Title:   "The Left Hand of Darkness",
					Authors: []string{"Ursula K. Le Guin"},
				},
			}},
		})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "secret")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	volumes, err := c.Search(ctx, "left hand of darkness")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(volumes) != 1 || volumes[0].ID != "abc" {
		t.Fatalf("Search volumes = %#v, want 1 item id=abc", volumes)
	}
	if gotPath != "/volumes" {
		t.Fatalf("path = %q, want /volumes", gotPath)
	}
	if gotQuery.Get("q") != "left hand of darkness" ||
		gotQuery.Get("maxResults") != "20" ||
		gotQuery.Get("key") != "secret" {
		t.Fatalf("query = %v, want q/maxResults/key encoded", gotQuery)
	}
	if gotQuery.Has("orderBy") {
		t.Fatalf("query = %v, want no orderBy for user search", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "hardback/") {
		t.Fatalf("User-Agent = %q, want hardback/*", gotUserAgent)
	}
}

func TestClient_PopularUsesSubjectCapAndOrdering(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(volumeListResponse{})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "")

	if _, err := c.Popular(context.Background()); err != nil {
		t.Fatalf("Popular returned error: %v", err)
	}
	if gotQuery.Get("q") != "subject:fiction" ||
		gotQuery.Get("maxResults") != "15" ||
		gotQuery.Get("orderBy") != "relevance" {
		t.Fatalf("query = %v, want fixed subject, cap 15, relevance ordering", gotQuery)
	}
	if gotQuery.Has("key") {
		t.Fatalf("query = %v, want no key param without an API key", gotQuery)
	}
}

func TestClient_MissingItemsYieldsEmptySlice(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"totalItems":0}`,
		`{"totalItems":0,"items":[]}`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))

		c := newTestClient(t, server.URL, "")
		volumes, err := c.Search(context.Background(), "nothing matches this")
		server.Close()
		if err != nil {
			t.Fatalf("Search(%s) returned error: %v", body, err)
		}
		if volumes == nil || len(volumes) != 0 {
			t.Fatalf("Search(%s) volumes = %#v, want empty non-nil slice", body, volumes)
		}
	}
}

func TestClient_LookupFetchesAndEscapesID(t *testing.T) {
	t.Parallel()

	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Volume{
			ID: "123",
			VolumeInfo: VolumeInfo{
				Title:   "Book Title",
				Authors: []string{"Author Name"},
			},
		})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "")

	volume, err := c.Lookup(context.Background(), "a b/c")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if gotPath != "/volumes/a%20b%2Fc" {
		t.Fatalf("path = %q, want escaped id", gotPath)
	}
	if volume.ID != "123" || volume.VolumeInfo.Title != "Book Title" {
		t.Fatalf("Lookup volume = %#v, want decoded record", volume)
	}
	if len(volume.VolumeInfo.Authors) != 1 || volume.VolumeInfo.Authors[0] != "Author Name" {
		t.Fatalf("Lookup authors = %#v, want [Author Name]", volume.VolumeInfo.Authors)
	}
}

func TestClient_LookupRequiresID(t *testing.T) {
	c := newTestClient(t, "127.0.0.1:1", "")
	if _, err := c.Lookup(context.Background(), "  "); err == nil {
		t.Fatalf("Lookup returned nil error, want error")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/volumes":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/volumes/bad-id":
			http.NotFound(w, r)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "")

	_, err := c.Search(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Search error = %v, want decode response error", err)
	}

	_, err = c.Lookup(context.Background(), "bad-id")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != 404 {
		t.Fatalf("Lookup error = %v, want StatusError 404", err)
	}

	_, err = c.Lookup(context.Background(), "other-id")
	if !errors.As(err, &statusErr) || statusErr.Code != 500 {
		t.Fatalf("Lookup error = %v, want StatusError 500", err)
	}
}

func TestClient_TransportFailureSurfacesAsURLError(t *testing.T) {
	t.Parallel()

	// Nothing listens here; the dial fails at the transport level.
	c := newTestClient(t, "http://127.0.0.1:1", "")

	_, err := c.Search(context.Background(), "anything")
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		t.Fatalf("Search error = %v, want *url.Error", err)
	}
}
