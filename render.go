package tpl2pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Loop-local variable names, valid only inside an each body.
const (
	varIndex  = "@index"  // zero-based index
	varIndex1 = "@index1" // one-based index
	varFirst  = "@first"  // true on the first iteration
	varLast   = "@last"   // true on the last iteration
)

// Render renders a template string against a data mapping and returns the
// resulting HTML fragment. Escaped tags {{path}} substitute the
// HTML-escaped value, raw tags {{{path}}} substitute it verbatim, and
// {{#each path}}...{{/each}} blocks repeat their body once per element of a
// sequence-valued path with loop-local variables in scope.
//
// Rendering is deterministic and never mutates data. Missing interpolation
// paths render as the empty string; only a malformed template or an each
// target that is missing or not a sequence returns a TemplateError.
func Render(template string, data map[string]any) (string, error) {
	nodes, err := parseTemplate(template)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	root := &scope{vars: data}
	if err := renderNodes(&buf, nodes, root); err != nil {
		return "", err
	}

	out := buf.String()
	if err := checkResidualTokens(out); err != nil {
		return "", err
	}
	return out, nil
}

// scope is one link of an immutable scope chain. Each loop iteration pushes
// a child scope carrying the loop-local variables, the per-item keys, and
// the item itself; sibling iterations and the outer scope never observe it.
type scope struct {
	parent  *scope
	vars    map[string]any
	item    any  // current loop item, valid when hasItem is set
	hasItem bool
}

// child derives an iteration scope from s without mutating any mapping.
func (s *scope) child(item any, index, length int) *scope {
	vars := map[string]any{
		varIndex:  index,
		varIndex1: index + 1,
		varFirst:  index == 0,
		varLast:   index == length-1,
	}
	// Map-like items expose their own top-level keys directly, merged on
	// top, so {{key}} works without a this. prefix.
	if m, ok := asStringMap(item); ok {
		for k, v := range m {
			vars[k] = v
		}
	}
	return &scope{parent: s, vars: vars, item: item, hasItem: true}
}

// lookup resolves a key path against the scope chain. The first path
// segment is found in the nearest scope that defines it; remaining segments
// descend through that value. this and this.field resolve against the
// nearest loop item; @-variables are looked up by their literal name, never
// by dot descent.
func (s *scope) lookup(path string) (any, bool) {
	if path == "this" || strings.HasPrefix(path, "this.") {
		return s.lookupThis(path)
	}
	if strings.HasPrefix(path, "@") {
		return s.lookupVar(path)
	}

	first := path
	rest := ""
	if i := strings.Index(path, "."); i != -1 {
		first, rest = path[:i], path[i+1:]
	}

	for cur := s; cur != nil; cur = cur.parent {
		v, ok := cur.vars[first]
		if !ok {
			continue
		}
		if rest == "" {
			return v, true
		}
		m, ok := asStringMap(v)
		if !ok {
			return nil, false
		}
		return resolvePath(rest, m)
	}
	return nil, false
}

// lookupThis resolves this or this.field against the nearest loop item.
// There is no fallback to the outer context when a field is absent on the
// item.
func (s *scope) lookupThis(path string) (any, bool) {
	cur := s
	for cur != nil && !cur.hasItem {
		cur = cur.parent
	}
	if cur == nil {
		return nil, false
	}
	if path == "this" {
		return cur.item, true
	}
	m, ok := asStringMap(cur.item)
	if !ok {
		return nil, false
	}
	return resolvePath(path[len("this."):], m)
}

// lookupVar resolves an @-variable by exact name along the scope chain.
func (s *scope) lookupVar(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// renderNodes walks a node sequence and writes the rendered output to buf.
func renderNodes(buf *strings.Builder, nodes []templateNode, sc *scope) error {
	for _, n := range nodes {
		switch n.kind {
		case nodeLiteral:
			buf.WriteString(n.text)

		case nodeRaw:
			v, ok := sc.lookup(n.path)
			if ok {
				buf.WriteString(formatValue(v))
			}
			// Missing path renders as empty string, never an error.

		case nodeEscaped:
			v, ok := sc.lookup(n.path)
			if !ok {
				// An @-variable outside any loop keeps its literal tag
				// text so the out-of-context reference stays visible.
				if strings.HasPrefix(n.path, "@") {
					buf.WriteString(n.text)
				}
				continue
			}
			buf.WriteString(escapeHTML(formatValue(v)))

		case nodeEach:
			if err := renderEach(buf, n, sc); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderEach renders one each block: the target path must resolve to a
// sequence in the current scope, and each element renders the body once
// under a derived iteration scope.
func renderEach(buf *strings.Builder, n templateNode, sc *scope) error {
	v, ok := sc.lookup(n.path)
	if !ok {
		return &TemplateError{Kind: TemplateErrTargetMissing, Path: n.path}
	}
	items, ok := asSequence(v)
	if !ok {
		return &TemplateError{Kind: TemplateErrTargetNotSequence, Path: n.path}
	}

	for i, item := range items {
		if err := renderNodes(buf, n.body, sc.child(item, i, len(items))); err != nil {
			return err
		}
	}
	return nil
}

// checkResidualTokens scans rendered output for each tokens that survived
// rendering, which indicates an unclosed or dangling block that escaped the
// parser (for example an opener with no closing delimiter). This structural
// integrity check runs on every render.
func checkResidualTokens(out string) error {
	if strings.Contains(out, openEach) {
		return &TemplateError{Kind: TemplateErrUnterminatedBlock, Detail: "residual each opener in output"}
	}
	if strings.Contains(out, closeEach) {
		return &TemplateError{Kind: TemplateErrDanglingClose, Detail: "residual each closer in output"}
	}
	return nil
}

// htmlEscaper escapes element-content specials. Quotes stay untouched;
// rendered fragments land in element content, not attribute values.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML converts &, <, and > to HTML entities.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// formatValue converts a resolved value to its canonical, locale-independent
// textual form. Strings pass through, booleans render as true/false,
// integers in decimal, floats in shortest non-exponent form, nil as the
// empty string. Map-like and sequence values use the fmt %v structural form.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", t)
	}
}
