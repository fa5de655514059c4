package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, ConfigName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_RelativeRootsResolveAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, "root \"src\" {}\nroot \"vendor/libs\" {}\n")

	ws, err := Load(p)
	require.NoError(t, err)

	require.Len(t, ws.Roots, 2)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "src")), ws.Roots[0])
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "vendor/libs")), ws.Roots[1])
	assert.Equal(t, filepath.ToSlash(dir), ws.Dir)
	assert.NotNil(t, ws.FS)
}

func TestLoad_AbsoluteRootKeptAsIs(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere")
	p := writeConfig(t, dir, "root \""+filepath.ToSlash(abs)+"\" {}\n")

	ws, err := Load(p)
	require.NoError(t, err)
	require.Len(t, ws.Roots, 1)
	assert.Equal(t, filepath.ToSlash(abs), ws.Roots[0])
}

func TestLoad_NoRoots(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, "# empty\n")

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_InvalidHCL(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, "root \"src\" {\n") // unclosed block

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigName))
	assert.Error(t, err)
}

func TestFind_WalksAncestors(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, "root \"src\" {}\n")

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, p, found)
}

func TestFind_NotFound(t *testing.T) {
	_, err := Find(t.TempDir())
	assert.Error(t, err)
}
