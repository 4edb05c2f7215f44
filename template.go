package tpl2pdf

import (
	"errors"
	"strings"
)

// Template tag delimiters.
const (
	openRaw   = "{{{"
	closeRaw  = "}}}"
	openTag   = "{{"
	closeTag  = "}}"
	openEach  = "{{#each"
	closeEach = "{{/each}}"
)

// Node kinds produced by the tokenizer.
const (
	nodeLiteral = iota
	nodeEscaped
	nodeRaw
	nodeEach
)

// templateNode is one typed node of a parsed template. A template is a flat
// sequence of literal text, escaped tags, and raw tags, except for each
// blocks, which carry their own nested node list. Parsing into a node tree
// up front means substituted values are never re-scanned for tags.
type templateNode struct {
	kind int
	text string         // literal text, or the tag's original source text
	path string         // key path for escaped/raw/each nodes
	body []templateNode // nested nodes for each blocks
}

// parseTemplate tokenizes a template string into a node sequence.
// Returns a TemplateError for an unterminated each block or a dangling
// {{/each}}.
func parseTemplate(tpl string) ([]templateNode, error) {
	nodes, rest, err := parseNodes(tpl, false)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		// parseNodes only stops early on a {{/each}} token; at the top
		// level that token has no opener.
		return nil, &TemplateError{Kind: TemplateErrDanglingClose}
	}
	return nodes, nil
}

// parseNodes consumes input until the end of the string or, when inBlock is
// set, until the {{/each}} closing the current block. It returns the parsed
// nodes and the unconsumed remainder (the text after the consumed closer).
// At the top level a {{/each}} stops parsing with the token still in the
// remainder so the caller can report it as dangling.
func parseNodes(input string, inBlock bool) ([]templateNode, string, error) {
	var nodes []templateNode

	for input != "" {
		idx := strings.Index(input, openTag)
		if idx == -1 {
			nodes = append(nodes, templateNode{kind: nodeLiteral, text: input})
			return finishNodes(nodes, inBlock)
		}

		if idx > 0 {
			nodes = append(nodes, templateNode{kind: nodeLiteral, text: input[:idx]})
			input = input[idx:]
		}

		switch {
		case strings.HasPrefix(input, closeEach):
			if !inBlock {
				return nodes, input, nil
			}
			return nodes, input[len(closeEach):], nil

		case isEachOpen(input):
			end := strings.Index(input, closeTag)
			path := strings.TrimSpace(input[len(openEach):end])
			body, rest, err := parseNodes(input[end+len(closeTag):], true)
			if err != nil {
				// Attach the path of the innermost unterminated block.
				var terr *TemplateError
				if errors.As(err, &terr) && terr.Path == "" {
					terr.Path = path
				}
				return nil, "", err
			}
			nodes = append(nodes, templateNode{kind: nodeEach, path: path, body: body})
			input = rest

		case strings.HasPrefix(input, openRaw):
			end := strings.Index(input, closeRaw)
			if end == -1 {
				// No closing }}}; keep the rest as literal text.
				nodes = append(nodes, templateNode{kind: nodeLiteral, text: input})
				return finishNodes(nodes, inBlock)
			}
			src := input[:end+len(closeRaw)]
			path := strings.TrimSpace(input[len(openRaw):end])
			nodes = append(nodes, templateNode{kind: nodeRaw, text: src, path: path})
			input = input[end+len(closeRaw):]

		default:
			end := strings.Index(input, closeTag)
			if end == -1 {
				nodes = append(nodes, templateNode{kind: nodeLiteral, text: input})
				return finishNodes(nodes, inBlock)
			}
			src := input[:end+len(closeTag)]
			path := strings.TrimSpace(input[len(openTag):end])
			nodes = append(nodes, templateNode{kind: nodeEscaped, text: src, path: path})
			input = input[end+len(closeTag):]
		}
	}

	return finishNodes(nodes, inBlock)
}

// finishNodes handles end-of-input: running out of text inside an each block
// means its {{/each}} is missing.
func finishNodes(nodes []templateNode, inBlock bool) ([]templateNode, string, error) {
	if inBlock {
		return nil, "", &TemplateError{Kind: TemplateErrUnterminatedBlock}
	}
	return nodes, "", nil
}

// isEachOpen reports whether input starts with a well-formed
// {{#each <path>}} opener. A bare "{{#each" with no closing delimiter falls
// through to literal text and is caught by the post-render structure check.
func isEachOpen(input string) bool {
	if !strings.HasPrefix(input, openEach) {
		return false
	}
	// Require a separator so {{#eachother}} is not an each tag.
	rest := input[len(openEach):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return false
	}
	return strings.Contains(input, closeTag)
}
