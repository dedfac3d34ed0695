// Package catalog derives the document catalog from a directory of cover
// images and serves read-only filter/sort views over the generated manifest.
package catalog

// Entry is one catalog item. The JSON field names are the manifest's wire
// contract and are consumed by the browser frontend as-is.
type Entry struct {
	Identifier     string `json:"identifier"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Year           int    `json:"publicationYear,omitempty"` // 0 = unknown
	CoverReference string `json:"coverImageReference,omitempty"`
	DocumentURL    string `json:"documentReference"`
}

// HasYear reports whether the entry carries a publication year.
func (e Entry) HasYear() bool { return e.Year != 0 }
