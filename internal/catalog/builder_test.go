package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/moorworks/peatshelf/internal/catalog"
)

func writeMapping(t *testing.T, dir string, m map[string]string) string {
	t.Helper()
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal mapping: %v", err)
	}
	path := filepath.Join(dir, "mapping.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}
	return path
}

func touchCovers(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("img"), 0o644); err != nil {
			t.Fatalf("write cover %s: %v", n, err)
		}
	}
}

func TestBuild_AssemblesMappedCovers(t *testing.T) {
	dir := t.TempDir()
	covers := filepath.Join(dir, "covers")
	if err := os.Mkdir(covers, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touchCovers(t, covers,
		"1990 - Niamh Carty - Blanket Bog Survey.jpg",
		"2005 - Seamus Byrne - Turf and Memory.png",
		"2020 - Anna Leahy - Peatland Ecology.JPG", // extension match is case-insensitive
		"old_scan.webp",                            // fallback name, still mappable by derived title
		"2011 - Nobody - Unlisted.jpg",             // absent from the mapping
		"2012 - Nobody - Blank Target.jpg",         // mapped to ""
		"notes.txt",                                // not a cover type
	)
	if err := os.Mkdir(filepath.Join(covers, "drafts"), 0o755); err != nil {
		t.Fatalf("mkdir drafts: %v", err)
	}

	mapping := writeMapping(t, dir, map[string]string{
		"Blanket Bog Survey": "https://docs.example/blanket.pdf",
		"Turf and Memory":    "https://docs.example/turf.pdf",
		"Peatland Ecology":   "https://docs.example/ecology.pdf",
		"old scan":           "https://docs.example/oldscan.pdf",
		"Blank Target":       "",
	})

	entries, err := catalog.Build(catalog.BuildConfig{CoverDir: covers, MappingPath: mapping})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4: %+v", len(entries), entries)
	}

	// Directory scan order is lexicographic by file name.
	first := entries[0]
	if first.Identifier != "1990 - Niamh Carty - Blanket Bog Survey" {
		t.Fatalf("identifier = %q", first.Identifier)
	}
	if first.Title != "Blanket Bog Survey" || first.Author != "Niamh Carty" || first.Year != 1990 {
		t.Fatalf("parsed metadata = %+v", first)
	}
	if first.DocumentURL != "https://docs.example/blanket.pdf" {
		t.Fatalf("document URL = %q", first.DocumentURL)
	}
	if want := "/covers/1990%20-%20Niamh%20Carty%20-%20Blanket%20Bog%20Survey.jpg"; first.CoverReference != want {
		t.Fatalf("cover reference = %q, want %q", first.CoverReference, want)
	}

	last := entries[3]
	if last.Identifier != "old_scan" || last.Title != "old scan" {
		t.Fatalf("fallback entry = %+v", last)
	}
	if last.Author != catalog.UnknownAuthor || last.HasYear() {
		t.Fatalf("fallback entry kept structured metadata: %+v", last)
	}
}

func TestBuild_DuplicateBaseNamesKeepFirstCover(t *testing.T) {
	dir := t.TempDir()
	covers := filepath.Join(dir, "covers")
	if err := os.Mkdir(covers, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// same base name under two allowed extensions
	touchCovers(t, covers,
		"2000 - Jane Doe - Bog Study.jpg",
		"2000 - Jane Doe - Bog Study.png",
	)
	mapping := writeMapping(t, dir, map[string]string{"Bog Study": "https://docs.example/bog.pdf"})

	entries, err := catalog.Build(catalog.BuildConfig{CoverDir: covers, MappingPath: mapping})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Identifier != "2000 - Jane Doe - Bog Study" {
		t.Fatalf("identifier = %q", entries[0].Identifier)
	}
	// .jpg sorts before .png, so that cover wins
	if want := "/covers/2000%20-%20Jane%20Doe%20-%20Bog%20Study.jpg"; entries[0].CoverReference != want {
		t.Fatalf("cover reference = %q, want %q", entries[0].CoverReference, want)
	}
}

func TestBuild_MissingCoverDirYieldsEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	mapping := writeMapping(t, dir, map[string]string{"Anything": "https://docs.example/x.pdf"})

	entries, err := catalog.Build(catalog.BuildConfig{
		CoverDir:    filepath.Join(dir, "no-such-dir"),
		MappingPath: mapping,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", entries)
	}
}

func TestBuild_CorruptMappingDropsEverything(t *testing.T) {
	dir := t.TempDir()
	covers := filepath.Join(dir, "covers")
	if err := os.Mkdir(covers, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touchCovers(t, covers, "1990 - Niamh Carty - Blanket Bog Survey.jpg")

	mapping := filepath.Join(dir, "mapping.json")
	if err := os.WriteFile(mapping, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}

	entries, err := catalog.Build(catalog.BuildConfig{CoverDir: covers, MappingPath: mapping})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("corrupt mapping still produced entries: %+v", entries)
	}
}

func TestBuild_CustomCoverBase(t *testing.T) {
	dir := t.TempDir()
	covers := filepath.Join(dir, "covers")
	if err := os.Mkdir(covers, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touchCovers(t, covers, "2005 - Seamus Byrne - Turf and Memory.png")
	mapping := writeMapping(t, dir, map[string]string{"Turf and Memory": "https://docs.example/turf.pdf"})

	entries, err := catalog.Build(catalog.BuildConfig{
		CoverDir:    covers,
		MappingPath: mapping,
		CoverBase:   "/static/covers/",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if want := "/static/covers/2005%20-%20Seamus%20Byrne%20-%20Turf%20and%20Memory.png"; entries[0].CoverReference != want {
		t.Fatalf("cover reference = %q, want %q", entries[0].CoverReference, want)
	}
}
