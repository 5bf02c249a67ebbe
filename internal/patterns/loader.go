package patterns

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Load reads a filter file and compiles it into a Set. Files ending in
// .yaml or .yml are parsed as YAML; anything else is parsed as JSON.
func Load(path string, opts ...Option) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read filter file: %v", ErrConfiguration, err)
	}

	var pairs []Pair
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		pairs, err = parseYAML(data)
	default:
		pairs, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	return Compile(pairs, opts...)
}

func parseJSON(data []byte) ([]Pair, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: filter file is not valid JSON", ErrConfiguration)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: filter file must contain a JSON object", ErrConfiguration)
	}

	var (
		pairs  []Pair
		badKey string
		bad    bool
	)
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			badKey, bad = key.String(), true
			return false
		}
		pairs = append(pairs, Pair{Expr: key.String(), Replacement: value.String()})
		return true
	})
	if bad {
		return nil, fmt.Errorf("%w: replacement for pattern %q must be a string", ErrConfiguration, badKey)
	}
	return pairs, nil
}

func parseYAML(data []byte) ([]Pair, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %v", ErrConfiguration, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: filter file must contain a YAML mapping", ErrConfiguration)
	}

	pairs := make([]Pair, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: pattern keys must be scalars (line %d)", ErrConfiguration, key.Line)
		}
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			return nil, fmt.Errorf("%w: replacement for pattern %q must be a string", ErrConfiguration, key.Value)
		}
		pairs = append(pairs, Pair{Expr: key.Value, Replacement: value.Value})
	}
	return pairs, nil
}
