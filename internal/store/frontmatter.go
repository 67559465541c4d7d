package store

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

var frontMatterRe = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)

type frontMatter struct {
	Title string
	Date  time.Time
	Tags  []string
}

// splitFrontMatter separates the YAML front matter block from the note
// body. Notes without front matter return a nil header.
func splitFrontMatter(data []byte) ([]byte, []byte) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if len(loc) < 4 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

func parseFrontMatter(fm []byte) (frontMatter, error) {
	var parsed frontMatter
	if len(fm) == 0 {
		return parsed, nil
	}

	var data yaml.Node
	if err := yaml.Unmarshal(fm, &data); err != nil {
		return frontMatter{}, err
	}

	if data.Kind != yaml.DocumentNode || len(data.Content) == 0 {
		return parsed, nil
	}

	mapping := data.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return parsed, nil
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		switch keyNode.Value {
		case "title":
			if valueNode.Kind == yaml.ScalarNode {
				parsed.Title = strings.TrimSpace(valueNode.Value)
			}
		case "date":
			if valueNode.Kind == yaml.ScalarNode {
				if t, err := dateparse.ParseAny(valueNode.Value); err == nil {
					parsed.Date = t
				}
			}
		case "tags":
			parsed.Tags = flattenYAMLValue(valueNode)
		}
	}

	return parsed, nil
}

func flattenYAMLValue(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.SequenceNode:
		vals := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if v := strings.TrimSpace(child.Value); v != "" {
				vals = append(vals, v)
			}
		}
		return vals
	case yaml.ScalarNode:
		if v := strings.TrimSpace(node.Value); v != "" {
			return []string{v}
		}
		return nil
	default:
		return nil
	}
}
