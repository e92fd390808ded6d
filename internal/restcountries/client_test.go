package restcountries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAllSortsByCommonName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "fields=name,region") {
			t.Errorf("missing field projection in query: %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": {"common": "Japan"}, "region": "Asia"},
			{"name": {"common": "Åland Islands"}, "region": "Europe"},
			{"name": {"common": "Brazil"}, "region": "Americas"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "globalvillage-test", 100)
	countries, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}

	got := make([]string, len(countries))
	for i, c := range countries {
		got[i] = c.Name.Common
	}
	// Locale-aware: Åland sorts with A, not after Z.
	want := []string{"Åland Islands", "Brazil", "Japan"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAllNonSuccessIsFetchFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 100)
	if _, err := c.All(context.Background()); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestAllNetworkErrorIsFetchFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: connection refused

	c := NewClient(srv.URL, "", 100)
	if _, err := c.All(context.Background()); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}
