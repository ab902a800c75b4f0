//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithManifest(defaultManifest), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the publish list")

	tf.Quit()
	if err := tf.WaitExit(1500 * time.Millisecond); err != nil {
		t.Logf("'q' did not exit the app: %v", err)
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.FailNow()
	}
}

func TestApplicationExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithManifest(defaultManifest), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the publish list")

	// Ctrl+C quits from the search prompt too
	tf.SendKeys(KeySearch)
	require.True(t, tf.SeePlain("Filter:"), "Search prompt should appear")

	tf.SendCtrlC()
	require.NoError(t, tf.WaitExit(2*time.Second), "app did not exit after ctrl+c")
}

func TestMissingManifest(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.StartApp("-manifest", "does-not-exist.toml"))

	require.True(t, tf.SeePlain("Error opening publish list"), "Should report the missing manifest")
	require.Error(t, tf.WaitExit(2*time.Second), "Should exit with a failure status")
}
