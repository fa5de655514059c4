// Package rewrite produces the new content of a dependent file when a
// module it references is renamed. It performs no I/O.
package rewrite

import (
	"strings"

	"github.com/agentic-research/modmv/internal/header"
	"github.com/agentic-research/modmv/internal/module"
)

// Rewrite retargets every reference to from in content so it points at
// to. The declaration header is rewritten structurally: dependency
// clauses keep their alias and selective-import list, interop
// identifiers swap their flattened prefix at the underscore boundary.
//
// The body is rewritten textually: literal substitution of the
// qualified prefix "from/" and the flattened prefix "from_". That can
// over-match substring collisions and under-match aliased references;
// the imprecision is accepted, not corrected.
//
// Returns the new content and whether anything changed.
func Rewrite(content string, from, to module.Name) (string, bool) {
	h, body, err := header.Parse(content)
	if err != nil {
		// No header to retarget; fall back to textual substitution only.
		out := substitute(content, from, to)
		return out, out != content
	}

	changed := h.Retarget(from, to)
	changed += h.RewriteInterops(from.Flat(), to.Flat())

	newBody := substitute(body, from, to)
	if changed == 0 && newBody == body {
		return content, false
	}
	return h.Serialize() + newBody, true
}

func substitute(text string, from, to module.Name) string {
	out := strings.ReplaceAll(text, string(from)+"/", string(to)+"/")
	return strings.ReplaceAll(out, from.Flat()+"_", to.Flat()+"_")
}
