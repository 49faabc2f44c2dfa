package deck

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/slidedeck/pkg/errors"
)

// rawSlide mirrors the recognised keys of a slide mapping.
type rawSlide struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Text   string `yaml:"text"`
	Notes  string `yaml:"notes"`
	Media  string `yaml:"media"`
	Layout string `yaml:"layout"`
}

// Parse builds a Deck from a YAML document whose top-level value is a
// sequence of slide mappings. It has no side effects.
func Parse(data []byte) (*Deck, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid YAML")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeParse, "top-level value must be a sequence of slides, got %s", nodeKind(root))
	}

	d := &Deck{Slides: make([]Slide, 0, len(root.Content))}
	for i, n := range root.Content {
		s, err := parseSlide(n)
		if err != nil {
			return nil, errors.New(errors.ErrCodeParse, "slide %d: %s", i, errors.UserMessage(err))
		}
		d.Slides = append(d.Slides, s)
	}
	return d, nil
}

func parseSlide(n *yaml.Node) (Slide, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return Slide{}, errors.New(errors.ErrCodeParse, "expected a mapping, got %s", nodeKind(n))
	}

	var raw rawSlide
	if err := n.Decode(&raw); err != nil {
		return Slide{}, err
	}

	s := Slide{
		Title: raw.Title,
		Body:  raw.Body,
		Notes: raw.Notes,
		Media: raw.Media,
	}
	if s.Body == "" {
		s.Body = raw.Text
	}

	if hasKey(n, "media") && strings.TrimSpace(raw.Media) == "" {
		return Slide{}, errors.New(errors.ErrCodeParse, "media must be a non-empty path")
	}
	if raw.Layout != "" {
		l, err := ParseLayout(raw.Layout)
		if err != nil {
			return Slide{}, err
		}
		s.Layout = l
	}
	return s, nil
}

// hasKey reports whether mapping node n has key set to a non-null value.
func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1]).Tag != "!!null"
		}
	}
	return false
}

// resolveAlias follows alias nodes to the node they refer to.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case 0:
		return "an empty document"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "a scalar"
	default:
		return "an unsupported value"
	}
}
