package http

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/moorworks/peatshelf/internal/storage"
)

// MountCovers serves cover images from the blob store.
// GET /covers/<file> -> the image bytes with a type derived from the name.
func MountCovers(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		// cover file names carry spaces, so the wildcard arrives escaped
		if dec, err := url.PathUnescape(key); err == nil {
			key = dec
		}
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			writeError(w, http.StatusNotFound, "cover not found")
			return
		}
		defer rc.Close()
		ct := mime.TypeByExtension(strings.ToLower(path.Ext(key)))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	})
}
