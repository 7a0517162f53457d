package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearch_QueryParams(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"engine":  r.URL.Query().Get("engine"),
			"q":       r.URL.Query().Get("q"),
			"api_key": r.URL.Query().Get("api_key"),
			"hl":      r.URL.Query().Get("hl"),
			"gl":      r.URL.Query().Get("gl"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic_results": []}`))
	}))
	defer ts.Close()

	client := NewClient("test-key", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	_, err := client.Search(context.Background(), "best caterer in Delhi reviews")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := map[string]string{
		"engine":  "google",
		"q":       "best caterer in Delhi reviews",
		"api_key": "test-key",
		"hl":      "en",
		"gl":      "in",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestSearch_DecodesLocalAndOrganic(t *testing.T) {
	body := `{
		"local_results": [
			{"title": "Sharma Caterers", "rating": 4.5, "reviews": 120}
		],
		"organic_results": [
			{"title": "Top 10 Caterers", "link": "https://example.in/caterers", "snippet": "The best caterers in town."}
		]
	}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewClient("k", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	results, err := client.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results.Local()) != 1 {
		t.Fatalf("Local() len = %d, want 1", len(results.Local()))
	}
	local := results.Local()[0]
	if local.Title != "Sharma Caterers" {
		t.Errorf("local Title = %q, want Sharma Caterers", local.Title)
	}
	if local.Rating == nil || *local.Rating != 4.5 {
		t.Errorf("local Rating = %v, want 4.5", local.Rating)
	}
	if local.Reviews == nil || *local.Reviews != 120 {
		t.Errorf("local Reviews = %v, want 120", local.Reviews)
	}
	if local.Link != "" {
		t.Errorf("local Link = %q, want empty", local.Link)
	}

	if len(results.Organic()) != 1 {
		t.Fatalf("Organic() len = %d, want 1", len(results.Organic()))
	}
	if results.Organic()[0].Snippet != "The best caterers in town." {
		t.Errorf("organic Snippet = %q", results.Organic()[0].Snippet)
	}
}

func TestSearch_LocalResultsPlacesEnvelope(t *testing.T) {
	body := `{"local_results": {"places": [{"title": "A"}, {"title": "B"}]}, "organic_results": []}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewClient("k", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	results, err := client.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Local()) != 2 {
		t.Errorf("Local() len = %d, want 2", len(results.Local()))
	}
}

func TestSearch_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid API key."}`))
	}))
	defer ts.Close()

	client := NewClient("bad-key", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	_, err := client.Search(context.Background(), "q")
	if err == nil {
		t.Fatal("Search() error = nil, want provider error")
	}
	if !strings.Contains(err.Error(), "Invalid API key.") {
		t.Errorf("error = %v, want provider message included", err)
	}
}

func TestSearch_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	client := NewClient("k", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	if _, err := client.Search(context.Background(), "q"); err == nil {
		t.Fatal("Search() error = nil, want unmarshal error")
	}
}
