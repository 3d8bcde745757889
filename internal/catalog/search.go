package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
)

const searchHits = 30

var isbnPattern = regexp.MustCompile(`^\d{10}$|^\d{13}$`)

// NormalizeISBN strips hyphens and spaces and reports whether the remainder
// is a 10 or 13 digit ISBN.
func NormalizeISBN(query string) (string, bool) {
	clean := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(query))
	return clean, isbnPattern.MatchString(clean)
}

// Search looks up books matching the query. A query that normalizes to an
// ISBN is resolved with an exact ISBN lookup; anything else runs title and
// author searches in parallel and merges the results, deduplicated by ISBN
// with first occurrence winning.
func (c *Client) Search(ctx context.Context, query string) ([]Book, error) {
	if c.appID == "" {
		return nil, apperrors.Unavailable("catalog search is not configured")
	}

	if clean, ok := NormalizeISBN(query); ok {
		items, err := c.fetch(ctx, "isbn", clean)
		if err != nil {
			return nil, err
		}
		return toBooks(items), nil
	}

	// Title and author searches run in parallel to mimic a keyword search.
	// A failure on one leg degrades to the other leg's results.
	var (
		wg          sync.WaitGroup
		titleItems  []searchItem
		authorItems []searchItem
		titleErr    error
		authorErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		titleItems, titleErr = c.fetch(ctx, "title", query)
	}()
	go func() {
		defer wg.Done()
		authorItems, authorErr = c.fetch(ctx, "author", query)
	}()
	wg.Wait()

	if titleErr != nil && authorErr != nil {
		return nil, titleErr
	}
	if titleErr != nil && c.logger != nil {
		c.logger.Warn("catalog title search failed", "error", titleErr)
	}
	if authorErr != nil && c.logger != nil {
		c.logger.Warn("catalog author search failed", "error", authorErr)
	}

	seen := make(map[string]struct{})
	merged := make([]searchItem, 0, len(titleItems)+len(authorItems))
	for _, item := range append(titleItems, authorItems...) {
		key := item.ISBN
		if key == "" {
			key = item.Title
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, item)
	}

	return toBooks(merged), nil
}

// fetch executes a single catalog request with one search parameter.
func (c *Client) fetch(ctx context.Context, paramKey, paramValue string) ([]searchItem, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("applicationId", c.appID)
	params.Set(paramKey, paramValue)
	params.Set("outOfStockFlag", "1")
	params.Set("formatVersion", "2")
	params.Set("hits", fmt.Sprintf("%d", searchHits))

	searchURL := c.endpoint + "?" + params.Encode()

	if c.logger != nil {
		c.logger.Debug("searching catalog",
			"param", paramKey,
			"value", paramValue,
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Unavailable("catalog request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Unavailable(fmt.Sprintf("catalog returned status %d", resp.StatusCode))
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return searchResp.Items, nil
}

// toBooks converts raw API items to catalog books.
func toBooks(items []searchItem) []Book {
	books := make([]Book, 0, len(items))
	for _, item := range items {
		books = append(books, Book{
			ISBN:      item.ISBN,
			Title:     item.Title,
			Authors:   splitAuthors(item.Author),
			Publisher: item.PublisherName,
			Thumbnail: bestThumbnail(item),
		})
	}
	return books
}

// splitAuthors splits Rakuten's slash-joined author field into names.
func splitAuthors(author string) []string {
	if author == "" {
		return nil
	}
	parts := strings.Split(author, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func bestThumbnail(item searchItem) string {
	switch {
	case item.LargeImageURL != "":
		return item.LargeImageURL
	case item.MediumImageURL != "":
		return item.MediumImageURL
	default:
		return item.SmallImageURL
	}
}
