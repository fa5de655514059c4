// Package header is the codec for declaration headers: the leading block
// of a source file declaring its module identity, dependency clauses and
// interop identifiers.
//
// Grammar, one directive per line:
//
//	module pkg.a
//	use pkg.core
//	use pkg.io as io
//	use pkg.str as s (split, join)
//	interop pkg_a_init
//
// Blank lines and ";" comments are part of the header. The header ends
// at the first line that is none of the above. Serialization reproduces
// untouched lines byte-for-byte and re-renders only modified clauses.
package header

import (
	"errors"
	"strings"

	"github.com/agentic-research/modmv/internal/module"
)

// ErrNoHeader is returned when the content carries no module directive.
var ErrNoHeader = errors.New("no declaration header")

// Use is one dependency clause. Alias and Symbols are preserved verbatim
// when the clause is retargeted.
type Use struct {
	Target  module.Name
	Alias   string
	Symbols []string

	raw   string // original line including terminator
	dirty bool
}

// Interop is one flattened cross-reference identifier declaration.
type Interop struct {
	Ident string

	raw   string
	dirty bool
}

type lineKind int

const (
	lineRaw lineKind = iota // blank, comment, or the module directive
	lineUse
	lineInterop
)

type hline struct {
	kind    lineKind
	use     *Use
	interop *Interop
	raw     string
}

// Header is the parsed declaration header of one source file.
type Header struct {
	Module   module.Name
	Uses     []*Use
	Interops []*Interop

	lines []hline
}

// Parse splits content into a typed header and the remaining body.
// The body starts at the first non-header line and is returned verbatim.
func Parse(content string) (*Header, string, error) {
	h := &Header{}
	rest := content
	moduleSeen := false

	for rest != "" {
		line, remainder := cutLine(rest)
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, ";"):
			h.lines = append(h.lines, hline{kind: lineRaw, raw: line})
		case strings.HasPrefix(trimmed, "module "):
			if moduleSeen {
				return finish(h, rest, moduleSeen)
			}
			moduleSeen = true
			h.Module = module.Name(strings.TrimSpace(trimmed[len("module "):]))
			h.lines = append(h.lines, hline{kind: lineRaw, raw: line})
		case strings.HasPrefix(trimmed, "use "):
			u := parseUse(trimmed, line)
			h.Uses = append(h.Uses, u)
			h.lines = append(h.lines, hline{kind: lineUse, use: u, raw: line})
		case strings.HasPrefix(trimmed, "interop "):
			in := &Interop{Ident: strings.TrimSpace(trimmed[len("interop "):]), raw: line}
			h.Interops = append(h.Interops, in)
			h.lines = append(h.lines, hline{kind: lineInterop, interop: in, raw: line})
		default:
			return finish(h, rest, moduleSeen)
		}
		rest = remainder
	}
	return finish(h, "", moduleSeen)
}

func finish(h *Header, body string, moduleSeen bool) (*Header, string, error) {
	if !moduleSeen {
		return nil, "", ErrNoHeader
	}
	return h, body, nil
}

// Retarget repoints every dependency clause targeting from at to,
// leaving alias and selective-import list unchanged. Returns the
// number of clauses rewritten.
func (h *Header) Retarget(from, to module.Name) int {
	n := 0
	for _, u := range h.Uses {
		if u.Target == from {
			u.Target = to
			u.dirty = true
			n++
		}
	}
	return n
}

// RewriteInterops swaps the leading flattened prefix oldFlat for newFlat
// on every interop identifier matching it at an underscore boundary.
// Returns the number of identifiers rewritten.
func (h *Header) RewriteInterops(oldFlat, newFlat string) int {
	n := 0
	for _, in := range h.Interops {
		switch {
		case in.Ident == oldFlat:
			in.Ident = newFlat
		case strings.HasPrefix(in.Ident, oldFlat+"_"):
			in.Ident = newFlat + in.Ident[len(oldFlat):]
		default:
			continue
		}
		in.dirty = true
		n++
	}
	return n
}

// Serialize renders the header. Untouched lines come back byte-for-byte;
// rewritten clauses are re-rendered in canonical form with the original
// line terminator.
func (h *Header) Serialize() string {
	var b strings.Builder
	for _, l := range h.lines {
		switch {
		case l.kind == lineUse && l.use.dirty:
			b.WriteString(renderUse(l.use) + terminator(l.raw))
		case l.kind == lineInterop && l.interop.dirty:
			b.WriteString("interop " + l.interop.Ident + terminator(l.raw))
		default:
			b.WriteString(l.raw)
		}
	}
	return b.String()
}

func parseUse(trimmed, raw string) *Use {
	u := &Use{raw: raw}
	rest := strings.TrimSpace(trimmed[len("use "):])

	if open := strings.Index(rest, "("); open >= 0 {
		list := rest[open+1:]
		if end := strings.Index(list, ")"); end >= 0 {
			list = list[:end]
		}
		for _, s := range strings.Split(list, ",") {
			if s = strings.TrimSpace(s); s != "" {
				u.Symbols = append(u.Symbols, s)
			}
		}
		rest = strings.TrimSpace(rest[:open])
	}

	fields := strings.Fields(rest)
	if len(fields) > 0 {
		u.Target = module.Name(fields[0])
	}
	if len(fields) >= 3 && fields[1] == "as" {
		u.Alias = fields[2]
	}
	return u
}

func renderUse(u *Use) string {
	s := "use " + string(u.Target)
	if u.Alias != "" {
		s += " as " + u.Alias
	}
	if len(u.Symbols) > 0 {
		s += " (" + strings.Join(u.Symbols, ", ") + ")"
	}
	return s
}

// cutLine splits off the first line of s, keeping its terminator.
func cutLine(s string) (line, rest string) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i+1], s[i+1:]
	}
	return s, ""
}

// terminator returns the line ending of raw, if any.
func terminator(raw string) string {
	if strings.HasSuffix(raw, "\r\n") {
		return "\r\n"
	}
	if strings.HasSuffix(raw, "\n") {
		return "\n"
	}
	return ""
}
