// Package config parses YAML configuration files into the evaluated macro
// model. Parsing happens in two steps: the YAML document is first decoded
// into a schema-agnostic Node tree, which is then validated and compiled
// into a macros.Config. Parsing is total: it either returns a fully
// validated configuration or the list of everything wrong with the file.
package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the shape of a raw configuration Node.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindBool
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "unknown"
}

// Node is one value in the raw configuration tree, dynamically shaped as the
// file dictates. Line and Column point at the value in the source document
// so parse errors can name the offending node. Floats are truncated to
// integers; there is no configuration field that needs them.
type Node struct {
	Kind   Kind
	Line   int
	Column int

	intVal  int64
	boolVal bool
	strVal  string
	seq     []*Node
	mapKeys []string
	mapVals map[string]*Node
}

// AsInt returns the node's integer value, if it is an integer.
func (n *Node) AsInt() (int64, bool) {
	if n == nil || n.Kind != KindInt {
		return 0, false
	}
	return n.intVal, true
}

// AsBool returns the node's boolean value, if it is a boolean.
func (n *Node) AsBool() (bool, bool) {
	if n == nil || n.Kind != KindBool {
		return false, false
	}
	return n.boolVal, true
}

// AsString returns the node's string value, if it is a string.
func (n *Node) AsString() (string, bool) {
	if n == nil || n.Kind != KindString {
		return "", false
	}
	return n.strVal, true
}

// AsSequence returns the node's elements, if it is a sequence.
func (n *Node) AsSequence() ([]*Node, bool) {
	if n == nil || n.Kind != KindSequence {
		return nil, false
	}
	return n.seq, true
}

// IsMapping reports whether the node is a mapping.
func (n *Node) IsMapping() bool {
	return n != nil && n.Kind == KindMapping
}

// IsNull reports whether the node is null (or absent).
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == KindNull
}

// Get returns the child node under key, or nil when the node is not a
// mapping or the key is absent.
func (n *Node) Get(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	return n.mapVals[key]
}

// Keys returns a mapping's keys in document order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	return n.mapKeys
}

// decodeYAML parses a YAML document into a raw Node tree.
func decodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Node{Kind: KindNull}, nil
	}

	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(y *yaml.Node) (*Node, error) {
	for y.Kind == yaml.AliasNode {
		y = y.Alias
	}

	n := &Node{Line: y.Line, Column: y.Column}

	switch y.Kind {
	case yaml.ScalarNode:
		switch y.Tag {
		case "!!null":
			n.Kind = KindNull

		case "!!int":
			v, err := strconv.ParseInt(y.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid integer %q", y.Line, y.Value)
			}
			n.Kind = KindInt
			n.intVal = v

		case "!!float":
			v, err := strconv.ParseFloat(y.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q", y.Line, y.Value)
			}
			n.Kind = KindInt
			n.intVal = int64(v)

		case "!!bool":
			v, err := strconv.ParseBool(y.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid boolean %q", y.Line, y.Value)
			}
			n.Kind = KindBool
			n.boolVal = v

		default:
			n.Kind = KindString
			n.strVal = y.Value
		}

	case yaml.SequenceNode:
		n.Kind = KindSequence
		n.seq = make([]*Node, 0, len(y.Content))
		for _, c := range y.Content {
			child, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			n.seq = append(n.seq, child)
		}

	case yaml.MappingNode:
		n.Kind = KindMapping
		n.mapVals = make(map[string]*Node, len(y.Content)/2)
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i].Value
			child, err := fromYAMLNode(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			if _, dup := n.mapVals[key]; !dup {
				n.mapKeys = append(n.mapKeys, key)
			}
			n.mapVals[key] = child
		}

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", y.Line)
	}

	return n, nil
}
