package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerKnowledgeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all memo tags with usage counts, most used first",
		Tags:        []string{"Knowledge"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTagMemos",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{name}/memos",
		Summary:     "List memos by tag",
		Description: "Returns all memos carrying the tag, enriched with book info",
		Tags:        []string{"Knowledge"},
	}, s.handleListTagMemos)
}

// === DTOs ===

// TagCountResponse pairs a tag with its usage count.
type TagCountResponse struct {
	Tag   string `json:"tag" doc:"Normalized tag including the # prefix"`
	Count int    `json:"count" doc:"Number of memos carrying the tag"`
}

// ListTagsOutput wraps the tag listing for Huma.
type ListTagsOutput struct {
	Body struct {
		Tags []TagCountResponse `json:"tags" doc:"Tags, most used first"`
	}
}

// ListTagMemosInput contains parameters for listing memos by tag.
// The leading # may be omitted; it is added before the lookup.
type ListTagMemosInput struct {
	Name string `path:"name" doc:"Tag name, with or without the # prefix"`
}

// TaggedMemoResponse is a memo enriched with its book's display info.
type TaggedMemoResponse struct {
	Memo          MemoResponse `json:"memo" doc:"The memo itself"`
	BookTitle     string       `json:"bookTitle" doc:"Title of the owning book, or a placeholder when deleted"`
	BookThumbnail string       `json:"bookThumbnail,omitempty" doc:"Cover image URL of the owning book"`
	BookDeleted   bool         `json:"bookDeleted" doc:"True when the owning book no longer exists"`
}

// ListTagMemosOutput wraps the tagged memo listing for Huma.
type ListTagMemosOutput struct {
	Body struct {
		Tag   string               `json:"tag" doc:"The normalized tag that was looked up"`
		Memos []TaggedMemoResponse `json:"memos" doc:"Memos carrying the tag, newest first"`
	}
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	counts, err := s.services.Knowledge.Tags(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListTagsOutput{}
	out.Body.Tags = make([]TagCountResponse, len(counts))
	for i, c := range counts {
		out.Body.Tags[i] = TagCountResponse{Tag: c.Tag, Count: c.Count}
	}
	return out, nil
}

func (s *Server) handleListTagMemos(ctx context.Context, input *ListTagMemosInput) (*ListTagMemosOutput, error) {
	tag := input.Name
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}

	memos, err := s.services.Knowledge.MemosByTag(ctx, tag)
	if err != nil {
		return nil, err
	}

	out := &ListTagMemosOutput{}
	out.Body.Tag = tag
	out.Body.Memos = make([]TaggedMemoResponse, len(memos))
	for i, m := range memos {
		out.Body.Memos[i] = TaggedMemoResponse{
			Memo:          memoResponse(m.Memo),
			BookTitle:     m.BookTitle,
			BookThumbnail: m.BookThumbnail,
			BookDeleted:   m.BookDeleted,
		}
	}
	return out, nil
}
