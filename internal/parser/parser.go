// Package parser derives display metadata (title, tags) from raw
// Markdown note content.
package parser

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result holds the metadata extracted from a Markdown file.
type Result struct {
	Title string
	Tags  []string
	Body  string
}

// Parse extracts a title, tags, and the body from raw Markdown bytes.
// The title comes from frontmatter "title" if present, then the first
// H1 heading, then the first non-empty line. Tags come from the
// frontmatter "tags" list plus inline #tags.
func Parse(data []byte) *Result {
	fm, body := splitFrontmatter(data)
	return &Result{
		Title: deriveTitle(fm, body),
		Tags:  extractTags(body, fm),
		Body:  body,
	}
}

// splitFrontmatter separates YAML frontmatter (between leading ---
// delimiters) from the Markdown body. Missing or malformed frontmatter
// means the whole content is body.
func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	var fm map[string]any
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, string(data)
	}
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")
	return fm, body
}

func deriveTitle(fm map[string]any, body string) string {
	if t, ok := fm["title"].(string); ok && t != "" {
		return t
	}
	firstNonEmpty := ""
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
		if firstNonEmpty == "" {
			firstNonEmpty = trimmed
		}
	}
	return firstNonEmpty
}

func extractTags(body string, fm map[string]any) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	if raw, ok := fm["tags"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	}

	for _, field := range strings.Fields(body) {
		if len(field) < 2 || field[0] != '#' {
			continue
		}
		tag := strings.TrimLeft(field, "#")
		if tag == "" || !isTagStart(tag[0]) {
			continue
		}
		add(strings.TrimRight(tag, ".,;:!?)"))
	}

	return out
}

func isTagStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
