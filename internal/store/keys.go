package store

import "fmt"

// Key prefixes. Primary records live under their entity prefix; secondary
// indexes live under "idx:" so streaming iterators can skip them.
const (
	bookPrefix  = "book:"
	memoPrefix  = "memo:"
	shelfPrefix = "shelf:"

	// idx:books:isbn:{isbn} -> bookID
	bookByISBNPrefix = "idx:books:isbn:"
	// idx:books:status:{status}:{bookID} -> ""
	bookByStatusPrefix = "idx:books:status:"
	// idx:memos:book:{bookID}:{memoID} -> ""
	memoByBookPrefix = "idx:memos:book:"

	schemaVersionKey = "schema:version"
)

func bookISBNKey(isbn string) []byte {
	return []byte(bookByISBNPrefix + isbn)
}

func bookStatusKey(status, bookID string) []byte {
	return fmt.Appendf(nil, "%s%s:%s", bookByStatusPrefix, status, bookID)
}

func memoBookKey(bookID, memoID string) []byte {
	return fmt.Appendf(nil, "%s%s:%s", memoByBookPrefix, bookID, memoID)
}

// lastSegment extracts the final colon-delimited segment of an index key.
func lastSegment(key []byte) string {
	s := string(key)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return s[i+1:]
		}
	}
	return s
}
