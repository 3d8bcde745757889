// Package catalog provides a client for looking up book metadata in the
// Rakuten Books API.
package catalog

// Book is a catalog search result, trimmed to the fields the library keeps.
type Book struct {
	ISBN      string   `json:"isbn,omitempty"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
}

// searchResponse is the raw Rakuten Books API response (formatVersion=2).
// The API returns Items or items depending on conditions, so matching is
// case-insensitive.
type searchResponse struct {
	Count int          `json:"count,case:ignore"`
	Page  int          `json:"page,case:ignore"`
	Items []searchItem `json:"Items,case:ignore"`
}

// searchItem is a single book record from the Rakuten Books API.
type searchItem struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	PublisherName  string `json:"publisherName"`
	ISBN           string `json:"isbn"`
	SalesDate      string `json:"salesDate,omitempty"`
	ItemCaption    string `json:"itemCaption,omitempty"`
	SmallImageURL  string `json:"smallImageUrl,omitempty"`
	MediumImageURL string `json:"mediumImageUrl,omitempty"`
	LargeImageURL  string `json:"largeImageUrl,omitempty"`
}
