//go:build e2e && unix

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterFunctionality(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithManifest(defaultManifest), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the publish list")
	require.True(t, tf.SeePlain("/sites/default/index.html"), "Should list index.html")
	require.True(t, tf.SeePlain("/sites/default/news.html"), "Should list news.html")

	tf.SendKeys(KeySearch)
	require.True(t, tf.SeePlain("Filter:"), "Filter prompt should appear")

	require.NoError(t, tf.Type("news"))
	tf.SendKeys(KeyEnter)
	require.True(t, tf.SeePlain("[Filter: news]"), "Filter indicator should appear")

	// Only the last frame counts; earlier frames still hold the full list
	frames := strings.Split(tf.SnapshotPlain(), "[Filter: news]")
	last := frames[len(frames)-1]
	require.NotContains(t, last, "index.html", "index.html should be filtered out")
	require.NotContains(t, last, "Other users", "Groups without matches should be hidden")

	mark := tf.Mark()
	tf.SendKeys(KeyEsc)
	require.True(t, tf.SeePlainSince(mark, "Other users"), "esc should clear the filter")
}
