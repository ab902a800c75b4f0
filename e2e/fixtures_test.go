//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

// defaultManifest lists two groups. Submitting with the default options
// publishes index.html, news.html and the related logo.png.
const defaultManifest = `
[[group]]
name = "My changes"

  [[group.resource]]
  path = "/sites/default/index.html"
  title = "Home"
  state = "changed"
  user = "editor"
  related = ["/sites/default/img/logo.png"]

  [[group.resource]]
  path = "/sites/default/news.html"
  state = "new"

  [[group.resource]]
  path = "/sites/default/locked.html"
  state = "changed"
  problem = "locked"
  message = "by admin"

[[group]]
name = "Other users"

  [[group.resource]]
  path = "/sites/default/old.html"
  state = "deleted"

[[resource]]
path = "/sites/default/img/logo.png"
state = "new"
`

// CreateTestWorkspace creates a temporary working directory for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteManifest writes content as manifest.toml into the workspace
func (tf *TUITestFramework) WriteManifest(content string) (string, error) {
	path := filepath.Join(tf.workspace, "manifest.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// StartWithManifest creates a workspace holding content and starts the app on it
func (tf *TUITestFramework) StartWithManifest(content string) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	path, err := tf.WriteManifest(content)
	if err != nil {
		return err
	}
	return tf.StartApp("-manifest", path)
}
