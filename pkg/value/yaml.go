package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var decimalLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// DecodeYAML reads a single YAML document from r, preserving mapping order.
// Aliases are resolved; integers and floats become json.Number scalars so a
// YAML tree is indistinguishable from the equivalent JSON tree.
func DecodeYAML(r io.Reader) (Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Null{}, nil
		}
		return nil, errors.Join(ErrInvalidYAML, err)
	}
	return FromYAMLNode(&doc)
}

// FromYAMLNode converts a decoded yaml.v3 node tree.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null{}, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := FromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w at line %d", ErrUnsupportedKey, keyNode.Line)
			}
			v, err := FromYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("%w: unknown node kind %d", ErrInvalidYAML, n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errors.Join(ErrInvalidYAML, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Scalar{raw: json.Number(strconv.FormatInt(i, 10))}, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Scalar{raw: json.Number(strconv.FormatUint(u, 10))}, nil
		}
		// Beyond 64 bits a plain decimal literal is kept as written.
		if decimalLiteral.MatchString(n.Value) {
			return Scalar{raw: json.Number(n.Value)}, nil
		}
		return nil, fmt.Errorf("%w: integer %q out of range at line %d", ErrInvalidYAML, n.Value, n.Line)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.Join(ErrInvalidYAML, err)
		}
		// JSON has no literal for these; keep the original text.
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return String(n.Value), nil
		}
		return Scalar{raw: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}, nil
	default:
		return String(n.Value), nil
	}
}
