package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ordrec/internal/record"
)

// ErrNotMapping is returned when a document's root is not a mapping.
var ErrNotMapping = errors.New("loader: document root is not a mapping")

// Decode parses a YAML (or JSON) document into a record.
func Decode(data []byte) (*record.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return FromNode(&doc)
}

// LoadFile reads and decodes a document file.
func LoadFile(path string) (*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	r, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("document loaded", "path", path, "keys", r.Len())
	return r, nil
}

// FromNode converts a parsed YAML node tree into a record. Mapping nodes
// become records in document order, sequences become lists, and scalars are
// resolved by tag. Aliases are followed.
func FromNode(n *yaml.Node) (*record.Record, error) {
	if n.Kind == 0 {
		return record.Empty(), nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return record.Empty(), nil
		}
		n = n.Content[0]
	}
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d", ErrNotMapping, n.Line)
	}

	v, err := nodeValue(n)
	if err != nil {
		return nil, err
	}
	return v.(*record.Record), nil
}

// NodeValue converts a single node to a record value: mappings become
// records, sequences []any and scalars their Go value. A zero node is nil.
func NodeValue(n *yaml.Node) (any, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	return nodeValue(n)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nodeValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return mappingValue(n)
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, child := range n.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
	}
}

// mappingValue builds a record directly so key order survives; a Go map
// would lose it.
func mappingValue(n *yaml.Node) (*record.Record, error) {
	r := record.Empty()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := resolveAlias(n.Content[i])
		valNode := n.Content[i+1]

		if keyNode.ShortTag() == "!!merge" {
			if err := mergeInto(r, valNode); err != nil {
				return nil, err
			}
			continue
		}

		rawKey, err := scalarValue(keyNode)
		if err != nil {
			return nil, fmt.Errorf("line %d: key: %w", keyNode.Line, err)
		}
		key, err := record.KeyOf(rawKey)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", keyNode.Line, err)
		}

		v, err := nodeValue(valNode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if err := r.Set(key, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// mergeInto applies a YAML merge key (<<: *anchor). Keys already present win.
func mergeInto(r *record.Record, n *yaml.Node) error {
	n = resolveAlias(n)
	var sources []*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		sources = n.Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}

	for _, src := range sources {
		m, err := mappingValue(resolveAlias(src))
		if err != nil {
			return err
		}
		for k, v := range m.All() {
			if r.Has(k) {
				continue
			}
			if err := r.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func scalarValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var u uint64
			if uerr := n.Decode(&u); uerr == nil {
				return u, nil
			}
			return nil, err
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their source text.
		return n.Value, nil
	}
}
