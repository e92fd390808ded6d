package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// handleSite serves the static site from dir. The site is plain pages
// (index.html, countries.html, guess-flag.html), so unknown paths fall
// back to index.html rather than a 404.
func handleSite(dir string) http.HandlerFunc {
	fs := http.Dir(dir)
	fileServer := http.FileServer(fs)

	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
