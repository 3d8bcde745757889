package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemo_HasContent(t *testing.T) {
	memo := &Memo{Quote: "引用だけ"}
	assert.True(t, memo.HasContent())

	memo = &Memo{Comment: "コメントだけ"}
	assert.True(t, memo.HasContent())

	memo = &Memo{Quote: "  ", Comment: "\t"}
	assert.False(t, memo.HasContent())
}

func TestMemo_Validate(t *testing.T) {
	memo := &Memo{ID: "memo-1", BookID: "book-1", Comment: "good"}
	assert.NoError(t, memo.Validate())

	memo = &Memo{BookID: "book-1", Comment: "good"}
	assert.ErrorIs(t, memo.Validate(), ErrEmptyID)

	memo = &Memo{ID: "memo-1", Comment: "good"}
	assert.ErrorIs(t, memo.Validate(), ErrEmptyBookID)

	memo = &Memo{ID: "memo-1", BookID: "book-1"}
	assert.ErrorIs(t, memo.Validate(), ErrEmptyMemo)

	memo = &Memo{ID: "memo-1", BookID: "book-1", Comment: "good", Page: -3}
	assert.ErrorIs(t, memo.Validate(), ErrNegativePage)
}
