package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

// Sort identifies a library view ordering.
type Sort string

const (
	// SortRegisteredDesc orders by registration time, newest first. This is
	// the default ordering.
	SortRegisteredDesc Sort = "registered-desc"
	// SortTitleAsc orders by title, locale-collated.
	SortTitleAsc Sort = "title-asc"
	// SortAuthorAsc orders by first author, locale-collated. Books without
	// authors compare as the empty string, so they sort first.
	SortAuthorAsc Sort = "author-asc"
	// SortFinishedDesc orders by finished date, newest first. Books without
	// a finished date sort last.
	SortFinishedDesc Sort = "finished-desc"
)

// Sorts lists every supported ordering.
var Sorts = []Sort{SortRegisteredDesc, SortTitleAsc, SortAuthorAsc, SortFinishedDesc}

// Valid reports whether s names a supported ordering.
func (s Sort) Valid() bool {
	for _, known := range Sorts {
		if s == known {
			return true
		}
	}
	return false
}

// Sorter sorts book slices using a locale-aware collator for textual keys.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter builds a sorter for the given BCP 47 locale. Unknown locales
// fall back to Japanese, the library's default.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Japanese
	}
	return &Sorter{collator: collate.New(tag)}
}

// Sort orders books in place. All orderings are stable so that equal keys
// keep their registration order.
func (s *Sorter) Sort(books []*domain.Book, by Sort) {
	switch by {
	case SortTitleAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return s.collator.CompareString(books[i].Title, books[j].Title) < 0
		})
	case SortAuthorAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return s.collator.CompareString(firstAuthor(books[i]), firstAuthor(books[j])) < 0
		})
	case SortFinishedDesc:
		sort.SliceStable(books, func(i, j int) bool {
			a, b := books[i].FinishedDate, books[j].FinishedDate
			if (a == "") != (b == "") {
				return b == ""
			}
			return a > b
		})
	default:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].RegisteredAt.After(books[j].RegisteredAt)
		})
	}
}

func firstAuthor(b *domain.Book) string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}

func sortStringsDesc(s []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(s)))
}
