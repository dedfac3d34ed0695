package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// coverExtensions is the fixed allow-list of cover image types, matched
// case-insensitively.
var coverExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// DefaultCoverBase is the public path prefix under which the daemon serves
// cover images.
const DefaultCoverBase = "/covers"

// BuildConfig describes one catalog build run.
type BuildConfig struct {
	// CoverDir is the directory of cover image files to scan.
	CoverDir string
	// MappingPath locates the JSON object mapping exact parsed titles to
	// document URLs. Only mapped titles make it into the manifest.
	MappingPath string
	// CoverBase is the public URL prefix for cover references. Defaults to
	// DefaultCoverBase.
	CoverBase string
}

// Build scans the cover directory and assembles the catalog entries, in the
// directory's lexicographic name order. Every emitted entry has a document
// URL resolved through the title mapping; covers whose parsed title is
// unmapped (or mapped to an empty string) are dropped. Identifiers are
// unique: covers sharing a base name across extensions keep the first file
// in scan order, later ones are skipped with a warning. A missing cover
// directory or an unreadable mapping file degrades to an empty result with a
// warning; only the caller's failure to persist the result is fatal.
func Build(cfg BuildConfig) ([]Entry, error) {
	mapping := loadMapping(cfg.MappingPath)

	dirents, err := os.ReadDir(cfg.CoverDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("catalog: cover directory %s missing, emitting empty manifest", cfg.CoverDir)
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read cover directory: %w", err)
	}

	coverBase := strings.TrimSuffix(cfg.CoverBase, "/")
	if coverBase == "" {
		coverBase = DefaultCoverBase
	}

	entries := make([]Entry, 0, len(dirents))
	seen := make(map[string]bool, len(dirents))
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !coverExtensions[ext] {
			continue
		}

		id := strings.TrimSuffix(name, filepath.Ext(name))
		if seen[id] {
			log.Printf("catalog: %q reuses identifier %q, keeping the first cover", name, id)
			continue
		}
		seen[id] = true
		meta, parsed := ParseName(id)
		if !parsed {
			log.Printf("catalog: %q does not match \"YYYY - Author - Title\", using fallback metadata", id)
		}

		docURL, ok := mapping[meta.Title]
		if !ok || docURL == "" {
			log.Printf("catalog: no document mapping for title %q, dropping %q", meta.Title, name)
			continue
		}

		entries = append(entries, Entry{
			Identifier:     id,
			Title:          meta.Title,
			Author:         meta.Author,
			Year:           meta.Year,
			CoverReference: coverBase + "/" + url.PathEscape(name),
			DocumentURL:    docURL,
		})
	}
	return entries, nil
}

// loadMapping reads the title→URL mapping. A missing or corrupt file is
// non-fatal by policy: warn and continue with an empty mapping, which under
// the filtering rule yields an empty manifest.
func loadMapping(path string) map[string]string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("catalog: mapping file %s unavailable (%v), continuing with empty mapping", path, err)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("catalog: mapping file %s unreadable (%v), continuing with empty mapping", path, err)
		return nil
	}
	return m
}
