// Package properties builds flat property maps for the binder from
// structured sources.
package properties

import (
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// FromYAML flattens a YAML document into dotted property keys:
//
//	server:
//	  port: 8080
//
// becomes {"server.port": "8080"}. Scalars are rendered with their
// canonical textual encoding; null values become empty strings. Sequences
// have no flat representation and are rejected.
func FromYAML(data []byte) (map[string]string, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	out := make(map[string]string)
	if err := flatten("", root, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			if err := flatten(full, v, out); err != nil {
				return err
			}
		case []any:
			return fmt.Errorf("property %q: sequences cannot be flattened", full)
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprintf("%v", v)
		}
	}
	return nil
}

// Merge overlays maps left to right; later maps win on key collisions.
// Inputs are never mutated.
func Merge(sources ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range sources {
		maps.Copy(out, m)
	}
	return out
}
