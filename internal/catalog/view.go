package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects one of the catalog's total orderings.
type SortKey string

const (
	SortTitleAsc   SortKey = "title_asc"
	SortTitleDesc  SortKey = "title_desc"
	SortAuthorAsc  SortKey = "author_asc"
	SortAuthorDesc SortKey = "author_desc"
	SortYearDesc   SortKey = "year_desc"
	SortYearAsc    SortKey = "year_asc"
)

// ParseSortKey maps a query-string value to a SortKey, defaulting to
// title_asc for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortTitleAsc, SortTitleDesc, SortAuthorAsc, SortAuthorDesc, SortYearDesc, SortYearAsc:
		return k
	default:
		return SortTitleAsc
	}
}

// Filter returns the entries whose title, author or year (decimal string)
// contains the query, case-insensitively. An empty query keeps everything.
// The input slice is never modified.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Author), q) {
		return true
	}
	return e.HasYear() && strings.Contains(strconv.Itoa(e.Year), q)
}

// Sort returns a sorted copy of entries. Title and author orderings compare
// case-insensitively (English collation). Both year orderings place entries
// without a year after every entry that has one and break year ties by title.
func Sort(entries []Entry, key SortKey) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	// Collators are not safe for concurrent use, so each call gets its own.
	c := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortTitleDesc:
			return c.CompareString(a.Title, b.Title) > 0
		case SortAuthorAsc:
			return c.CompareString(a.Author, b.Author) < 0
		case SortAuthorDesc:
			return c.CompareString(a.Author, b.Author) > 0
		case SortYearDesc, SortYearAsc:
			if a.HasYear() != b.HasYear() {
				return a.HasYear() // missing years sink to the end
			}
			if a.Year != b.Year {
				if key == SortYearDesc {
					return a.Year > b.Year
				}
				return a.Year < b.Year
			}
			return c.CompareString(a.Title, b.Title) < 0
		default: // SortTitleAsc
			return c.CompareString(a.Title, b.Title) < 0
		}
	})
	return out
}
