package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/modmv/internal/header"
)

const dependent = `module pkg.b
use pkg.a as x (foo)
use other.mod
interop pkg_a_shim
interop pkg_ab_shim

call pkg.a/foo
call Abc/foo
init pkg_a_boot
keep pkg_ab_boot
`

func TestRewrite_HeaderClause(t *testing.T) {
	out, changed := Rewrite(dependent, "pkg.a", "pkg.a2")
	require.True(t, changed)

	h, _, err := header.Parse(out)
	require.NoError(t, err)
	require.Len(t, h.Uses, 2)
	assert.Equal(t, "pkg.a2", string(h.Uses[0].Target))
	assert.Equal(t, "x", h.Uses[0].Alias)
	assert.Equal(t, []string{"foo"}, h.Uses[0].Symbols)
	assert.Equal(t, "other.mod", string(h.Uses[1].Target))
	assert.NotContains(t, out, "use pkg.a \n")
}

func TestRewrite_BodyQualifiedPrefix(t *testing.T) {
	out, changed := Rewrite(dependent, "pkg.a", "pkg.a2")
	require.True(t, changed)

	assert.Contains(t, out, "call pkg.a2/foo\n")
	// "Abc/foo" is untouched: "pkg.a/" is not a prefix of it.
	assert.Contains(t, out, "call Abc/foo\n")
}

func TestRewrite_FlattenedPrefix(t *testing.T) {
	out, changed := Rewrite(dependent, "pkg.a", "pkg.a2")
	require.True(t, changed)

	assert.Contains(t, out, "interop pkg_a2_shim\n")
	assert.Contains(t, out, "init pkg_a2_boot\n")
	// pkg_ab identifiers share a substring but not the "pkg_a_" prefix.
	assert.Contains(t, out, "interop pkg_ab_shim\n")
	assert.Contains(t, out, "keep pkg_ab_boot\n")
}

func TestRewrite_NoReferencesNoChange(t *testing.T) {
	out, changed := Rewrite(dependent, "unrelated.mod", "whatever")
	assert.False(t, changed)
	assert.Equal(t, dependent, out)
}

func TestRewrite_HeaderlessContentFallsBackToTextual(t *testing.T) {
	out, changed := Rewrite("see pkg.a/doc for details\n", "pkg.a", "pkg.a2")
	assert.True(t, changed)
	assert.Equal(t, "see pkg.a2/doc for details\n", out)
}

func TestRewrite_AcceptedOverMatch(t *testing.T) {
	// Textual substitution is not scope-checked: a qualified prefix
	// inside a string literal is rewritten too. Documented behavior.
	src := "module pkg.b\nuse pkg.a\nprint \"pkg.a/inside-string\"\n"
	out, changed := Rewrite(src, "pkg.a", "pkg.a2")
	require.True(t, changed)
	assert.Contains(t, out, "\"pkg.a2/inside-string\"")
}
