package search

import (
	"context"
	"fmt"
	"regexp"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query  string // User's search text; an exact ISBN is matched directly
	Status string // Optional status filter
	Limit  int
	Offset int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{Limit: 20}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"tookMs"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Authors    []string          `json:"authors,omitempty"`
	Publisher  string            `json:"publisher,omitempty"`
	ISBN       string            `json:"isbn,omitempty"`
	Status     string            `json:"status"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

var isbnPattern = regexp.MustCompile(`^\d{10}$|^\d{13}$`)

// Search executes a query against the index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.Fields = []string{"title", "authors", "publisher", "isbn", "status"}
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.AddField("title")
	searchRequest.Highlight.AddField("authors")

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		out := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			out.Title = t
		}
		switch a := hit.Fields["authors"].(type) {
		case string:
			out.Authors = []string{a}
		case []any:
			for _, v := range a {
				if name, ok := v.(string); ok {
					out.Authors = append(out.Authors, name)
				}
			}
		}
		if p, ok := hit.Fields["publisher"].(string); ok {
			out.Publisher = p
		}
		if i, ok := hit.Fields["isbn"].(string); ok {
			out.ISBN = i
		}
		if st, ok := hit.Fields["status"].(string); ok {
			out.Status = st
		}
		if len(hit.Fragments) > 0 {
			out.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					out.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, out)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		// A bare ISBN looks up the exact record instead of scoring text.
		if isbnPattern.MatchString(params.Query) {
			isbnQuery := bleve.NewTermQuery(params.Query)
			isbnQuery.SetField("isbn")
			queries = append(queries, isbnQuery)
		} else {
			textQueries := []query.Query{}

			titleMatch := bleve.NewMatchQuery(params.Query)
			titleMatch.SetField("title")
			titleMatch.SetBoost(3.0)
			textQueries = append(textQueries, titleMatch)

			authorMatch := bleve.NewMatchQuery(params.Query)
			authorMatch.SetField("authors")
			authorMatch.SetBoost(2.0)
			textQueries = append(textQueries, authorMatch)

			authorLineMatch := bleve.NewMatchQuery(params.Query)
			authorLineMatch.SetField("author_line")
			authorLineMatch.SetBoost(1.5)
			textQueries = append(textQueries, authorLineMatch)

			publisherMatch := bleve.NewMatchQuery(params.Query)
			publisherMatch.SetField("publisher")
			publisherMatch.SetBoost(0.5)
			textQueries = append(textQueries, publisherMatch)

			queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
		}
	}

	if params.Status != "" {
		statusQuery := bleve.NewTermQuery(params.Status)
		statusQuery.SetField("status")
		queries = append(queries, statusQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
