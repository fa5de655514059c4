package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/modmv/internal/module"
)

const sample = `; generated by hand
module pkg.b

use pkg.a as a (foo, bar)
use pkg.core
interop pkg_b_init
interop unrelated_ident

body line one
pkg.a/foo()
`

func TestParse_Fields(t *testing.T) {
	h, body, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, module.Name("pkg.b"), h.Module)
	require.Len(t, h.Uses, 2)
	assert.Equal(t, module.Name("pkg.a"), h.Uses[0].Target)
	assert.Equal(t, "a", h.Uses[0].Alias)
	assert.Equal(t, []string{"foo", "bar"}, h.Uses[0].Symbols)
	assert.Equal(t, module.Name("pkg.core"), h.Uses[1].Target)
	assert.Empty(t, h.Uses[1].Alias)

	require.Len(t, h.Interops, 2)
	assert.Equal(t, "pkg_b_init", h.Interops[0].Ident)

	assert.Equal(t, "body line one\npkg.a/foo()\n", body)
}

func TestParse_NoHeader(t *testing.T) {
	_, _, err := Parse("just a body\nno directives\n")
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParse_CommentOnlyFileHasNoHeader(t *testing.T) {
	_, _, err := Parse("; comment\n; another\n")
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestSerialize_UntouchedIsByteIdentical(t *testing.T) {
	h, body, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, sample, h.Serialize()+body)
}

func TestRetarget_PreservesAliasAndSymbols(t *testing.T) {
	h, _, err := Parse(sample)
	require.NoError(t, err)

	n := h.Retarget(module.Name("pkg.a"), module.Name("pkg2.a"))
	assert.Equal(t, 1, n)

	out := h.Serialize()
	assert.Contains(t, out, "use pkg2.a as a (foo, bar)\n")
	assert.NotContains(t, out, "use pkg.a ")
	// Unrelated clause stays byte-identical.
	assert.Contains(t, out, "use pkg.core\n")
}

func TestRetarget_NoMatch(t *testing.T) {
	h, _, err := Parse(sample)
	require.NoError(t, err)

	assert.Zero(t, h.Retarget(module.Name("pkg.missing"), module.Name("x")))
	assert.Equal(t, sample, h.Serialize()+"body line one\npkg.a/foo()\n")
}

func TestRewriteInterops_PrefixBoundary(t *testing.T) {
	h, _, err := Parse(sample)
	require.NoError(t, err)

	n := h.RewriteInterops("pkg_b", "pkg2_b")
	assert.Equal(t, 1, n)
	assert.Equal(t, "pkg2_b_init", h.Interops[0].Ident)
	// "unrelated_ident" does not start with "pkg_b_" and stays put.
	assert.Equal(t, "unrelated_ident", h.Interops[1].Ident)
}

func TestRewriteInterops_ExactMatch(t *testing.T) {
	h, _, err := Parse("module m\ninterop pkg_a\ninterop pkg_ab\n")
	require.NoError(t, err)

	n := h.RewriteInterops("pkg_a", "pkg_a2")
	assert.Equal(t, 1, n)
	assert.Equal(t, "pkg_a2", h.Interops[0].Ident)
	// "pkg_ab" matches as a substring but not at the boundary.
	assert.Equal(t, "pkg_ab", h.Interops[1].Ident)
}

func TestParse_CRLFPreserved(t *testing.T) {
	src := "module m\r\nuse pkg.a\r\nbody\r\n"
	h, body, err := Parse(src)
	require.NoError(t, err)

	h.Retarget("pkg.a", "pkg.b")
	assert.Equal(t, "module m\r\nuse pkg.b\r\n", h.Serialize())
	assert.Equal(t, "body\r\n", body)
}

func TestParse_HeaderOnlyFile(t *testing.T) {
	h, body, err := Parse("module solo\n")
	require.NoError(t, err)
	assert.Equal(t, module.Name("solo"), h.Module)
	assert.Empty(t, body)
}
