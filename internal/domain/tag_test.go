package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags_SplitsOnSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"spaces", "#小説 #名言", []string{"#小説", "#名言"}},
		{"commas", "fiction,classic", []string{"#fiction", "#classic"}},
		{"ideographic comma", "小説、名言", []string{"#小説", "#名言"}},
		{"mixed separators", "#a, b\t#c\nd", []string{"#a", "#b", "#c", "#d"}},
		{"hash prepended when missing", "novel #quote", []string{"#novel", "#quote"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.input))
		})
	}
}

// Pins set semantics within one memo: "money invest #money" yields #money once.
func TestParseTags_DeduplicatesPreservingOrder(t *testing.T) {
	assert.Equal(t, []string{"#money", "#invest"}, ParseTags("money invest #money"))
	assert.Equal(t, []string{"#a", "#b"}, ParseTags("#a #b #a a"))
}

func TestParseTags_Empty(t *testing.T) {
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags("   ,、  "))
	assert.Empty(t, ParseTags("#")) // bare hash carries no tag
}
