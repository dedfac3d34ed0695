package http

import (
	"net/http"

	"github.com/moorworks/peatshelf/internal/catalog"
)

// CatalogHandler serves the built catalog as a bare JSON array, filtered and
// ordered by the q and sort query parameters. The entries snapshot is loaded
// once at startup; rebuilding the catalog means restarting the daemon.
func CatalogHandler(entries []catalog.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		key := catalog.ParseSortKey(r.URL.Query().Get("sort"))
		out := catalog.Sort(catalog.Filter(entries, q), key)
		writeJSON(w, http.StatusOK, out)
	}
}
