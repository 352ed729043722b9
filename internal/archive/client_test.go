package archive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/links/" {
			t.Errorf("path = %s, want /links/", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"url":"https://go.dev","title":"Go Basics","tags":["go","tutorial"],"created_at":"2024-01-01","resource_type":"article"},
			{"id":2,"url":"https://rust-lang.org","created_at":"2024-02-01T10:00:00","resource_type":"resource","tags":null}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithHTTPClient(srv.Client()))
	got, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	want := []Record{
		{ID: 1, URL: "https://go.dev", Title: "Go Basics", Tags: []string{"go", "tutorial"}, CreatedAt: "2024-01-01", ResourceType: TypeArticle},
		{ID: 2, URL: "https://rust-lang.org", CreatedAt: "2024-02-01T10:00:00", ResourceType: TypeResource},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FetchAll mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchAllNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchAll(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if ne.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", ne.StatusCode)
	}
}

func TestFetchAllBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchAll(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
}

func TestFetchAllTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).FetchAll(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if ne.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", ne.StatusCode)
	}
}

func TestDeleteByID(t *testing.T) {
	tests := []struct {
		status  int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusNoContent, false},
		{http.StatusNotFound, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		var gotMethod, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.WriteHeader(tt.status)
		}))

		err := NewClient(srv.URL).DeleteByID(context.Background(), 5)
		srv.Close()

		if gotMethod != http.MethodDelete || gotPath != "/links/5" {
			t.Errorf("request = %s %s, want DELETE /links/5", gotMethod, gotPath)
		}
		if tt.wantErr && err == nil {
			t.Errorf("DeleteByID with status %d: expected error", tt.status)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("DeleteByID with status %d: unexpected error: %v", tt.status, err)
		}
	}
}

func TestGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Link not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Get(context.Background(), 99)
	var ne *NetworkError
	if !errors.As(err, &ne) || !ne.NotFound() {
		t.Fatalf("expected not-found *NetworkError, got %v", err)
	}
}

func TestRecordBadge(t *testing.T) {
	if got := (Record{ResourceType: TypeResource}).Badge(); got != "TOOL" {
		t.Errorf("Badge(resource) = %q, want TOOL", got)
	}
	if got := (Record{ResourceType: TypeArticle}).Badge(); got != "READ" {
		t.Errorf("Badge(article) = %q, want READ", got)
	}
}
