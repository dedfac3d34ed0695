package catalog

import (
	"strconv"
	"strings"
)

// nameDelimiter separates year, author and title in cover file base names:
// "YYYY - Author - Title".
const nameDelimiter = " - "

const (
	UnknownAuthor = "Unknown Author"
	UntitledWork  = "Untitled"
)

// Meta is the document metadata derived from a cover file's base name.
type Meta struct {
	Title  string
	Author string
	Year   int // 0 = unknown
}

// ParseName derives document metadata from a file base name (no extension).
// Names of the form "YYYY - Author - Title" yield year, author and title; the
// year token must be exactly four decimal digits, and a title containing
// " - " is kept whole by rejoining the remaining segments. Anything else
// falls back to a best-effort title (underscores and hyphens become spaces)
// with no author or year. The second result is false when the fallback was
// taken, so callers can emit a diagnostic. ParseName never fails.
func ParseName(base string) (Meta, bool) {
	segs := strings.Split(base, nameDelimiter)
	if len(segs) >= 3 {
		if year, ok := parseYear(segs[0]); ok {
			author := segs[1]
			if author == "" {
				author = UnknownAuthor
			}
			title := strings.Join(segs[2:], nameDelimiter)
			if title == "" {
				title = UntitledWork
			}
			return Meta{Title: title, Author: author, Year: year}, true
		}
	}

	title := strings.NewReplacer("_", " ", "-", " ").Replace(base)
	if title == "" {
		title = UntitledWork
	}
	return Meta{Title: title, Author: UnknownAuthor}, false
}

// parseYear accepts only a token of exactly four decimal digits, so signed
// forms like "-123" or "+123" do not qualify as years.
func parseYear(tok string) (int, bool) {
	if len(tok) != 4 {
		return 0, false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	return n, err == nil
}
