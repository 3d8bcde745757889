package domain

import "strings"

// ParseTags extracts hashtag tokens from free-form memo input. Tokens are
// split on whitespace, commas, and the ideographic comma; tokens without a
// leading '#' get one. Duplicates within one input collapse, preserving
// first-seen order.
func ParseTags(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '、':
			return true
		}
		return false
	})

	seen := make(map[string]struct{}, len(fields))
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		tag := f
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		// A bare "#" carries no tag.
		if tag == "#" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// TagCount pairs a tag with the number of memos carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
