package store

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var wikiLinkRe = regexp.MustCompile(`\[\[(.+?)\]\]`)

// extractLinks collects the outbound link targets of a note body. Inline
// markdown links come from the goldmark AST; wiki links from a regexp
// pass since goldmark does not parse them natively.
func extractLinks(body []byte) []string {
	links := make(map[string]struct{})

	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader(body))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if target := normalizeLink(string(link.Destination)); target != "" {
				links[target] = struct{}{}
			}
		}
		return ast.WalkContinue, nil
	})

	for _, match := range wikiLinkRe.FindAllSubmatch(body, -1) {
		if len(match) > 1 {
			if target := normalizeLink(string(match[1])); target != "" {
				links[target] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(links))
	for link := range links {
		out = append(out, link)
	}
	sort.Strings(out)
	return out
}

// normalizeLink reduces a raw link target to a note id candidate.
// External urls resolve to nothing.
func normalizeLink(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if hash := strings.Index(cleaned, "#"); hash >= 0 {
		cleaned = cleaned[:hash]
	}
	cleaned = strings.Trim(cleaned, "/")
	if cleaned == "" {
		return ""
	}

	lowered := strings.ToLower(cleaned)
	if strings.Contains(lowered, "://") || strings.HasPrefix(lowered, "mailto:") {
		return ""
	}

	base := cleaned
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".md")
	return strings.TrimSpace(base)
}
