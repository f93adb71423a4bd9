package manifest

import (
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parsed is the result of reading a SKILL.md file: the declared metadata,
// the raw front matter for schema validation, and the relative resource
// references discovered in the body.
type Parsed struct {
	Manifest *Manifest
	Meta     map[string]interface{}
	Refs     []string
}

// markdown is the shared goldmark instance with front matter support.
var markdown = goldmark.New(goldmark.WithExtensions(meta.Meta))

// ParseFile reads and parses a package's SKILL.md.
func ParseFile(path string) (*Parsed, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	parsed, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return parsed, nil
}

// Parse parses SKILL.md content: YAML front matter plus Markdown body.
func Parse(content []byte) (*Parsed, error) {
	pctx := parser.NewContext()
	doc := markdown.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, fmt.Errorf("missing front matter")
	}

	m, err := fromMeta(metaData)
	if err != nil {
		return nil, err
	}

	return &Parsed{
		Manifest: m,
		Meta:     metaData,
		Refs:     extractRefs(doc, content),
	}, nil
}

// fromMeta maps the decoded front matter onto a Manifest. Unknown keys are
// retained in Parsed.Meta but ignored here; the schema validator decides
// whether they are acceptable.
func fromMeta(metaData map[string]interface{}) (*Manifest, error) {
	m := &Manifest{}

	var err error
	if m.Name, err = stringField(metaData, "name"); err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, fmt.Errorf("front matter missing required 'name' field")
	}
	if m.Description, err = stringField(metaData, "description"); err != nil {
		return nil, err
	}
	if m.Description == "" {
		return nil, fmt.Errorf("front matter missing required 'description' field")
	}
	if m.License, err = stringField(metaData, "license"); err != nil {
		return nil, err
	}
	if m.Version, err = stringField(metaData, "version"); err != nil {
		return nil, err
	}

	if v, ok := metaData["always"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("front matter 'always' field is not a boolean")
		}
		m.Always = b
	}

	workers, err := stringListField(metaData, "workers")
	if err != nil {
		return nil, err
	}
	m.Workers = dedupe(workers)

	return m, nil
}

func stringField(metaData map[string]interface{}, key string) (string, error) {
	v, ok := metaData[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("front matter %q field is not a string", key)
	}
	return s, nil
}

func stringListField(metaData map[string]interface{}, key string) ([]string, error) {
	v, ok := metaData[key]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("front matter %q field is not a list", key)
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("front matter %q entries must be strings", key)
		}
		result = append(result, s)
	}
	return result, nil
}

// dedupe collapses repeated tags while preserving first-seen order.
func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			result = append(result, t)
		}
	}
	return result
}
