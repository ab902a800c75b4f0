package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPaths(t *testing.T) {
	paths := []string{"/sites/index.html", "/sites/news/today.html", "/system/logo.png"}

	kept, matched := FilterPaths("", paths)
	assert.Equal(t, []int{0, 1, 2}, kept)
	assert.Empty(t, matched)

	kept, matched = FilterPaths("news", paths)
	assert.Equal(t, []int{1}, kept)
	assert.Equal(t, []int{7, 8, 9, 10}, matched[1])

	// Original order is kept whatever the match score
	kept, _ = FilterPaths("html", paths)
	assert.Equal(t, []int{0, 1}, kept)

	kept, matched = FilterPaths("zzz", paths)
	assert.Empty(t, kept)
	assert.Empty(t, matched)
}
