package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pocketos dev\n", out)
}

func TestCatalogDump(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "id: messages")
	assert.Contains(t, out, "id: imageGen")
}

func TestCatalogDirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(`
apps:
  - id: podcasts
    name: Podcasts
    icon: mic
`), 0o644))

	out, err := run(t, "catalog", "search", "podcast", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "podcasts")
	assert.Contains(t, out, "Podcasts")
}

func TestCatalogMissingDir(t *testing.T) {
	_, err := run(t, "catalog", "--dir", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSearchNeedsQuery(t *testing.T) {
	_, err := run(t, "catalog", "search")
	assert.Error(t, err)
}
