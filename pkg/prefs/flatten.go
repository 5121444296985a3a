// Package prefs converts the nested configuration subtree into the
// flat dot-notation preference assignments written to user.js.
package prefs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// Pref is one flattened preference assignment.
type Pref struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// List is an ordered preference list. It renders as a two-column table
// for the CLI's table output format.
type List []Pref

// TableHeader returns the table column names.
func (l List) TableHeader() []string {
	return []string{"KEY", "VALUE"}
}

// TableRows returns one row per preference, in order.
func (l List) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		rows = append(rows, []string{p.Key, fmt.Sprintf("%v", p.Value)})
	}
	return rows
}

// enabledKey is the hoisted key: a mapping that contains "enabled"
// alongside other keys assigns the enabled value to the parent path
// itself, while the siblings keep nesting. A mapping whose only key is
// "enabled" nests normally.
const enabledKey = "enabled"

// Flatten converts a nested mapping node into dot-notation leaf
// assignments. Emission is depth-first in declaration order, so the
// generated output is deterministic for a given document.
//
//	{"a": {"b": 1}}                      -> {"a.b": 1}
//	{"a": {"enabled": false}}            -> {"a.enabled": false}
//	{"a": {"enabled": true, "x": 1}}     -> {"a": true, "a.x": 1}
func Flatten(node *yaml.Node) ([]Pref, error) {
	node = resolve(node)
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zenerrors.New(zenerrors.ErrCodeInvalidConfig,
			"config subtree must be a mapping")
	}
	return flattenMapping(node, "")
}

func flattenMapping(m *yaml.Node, parent string) ([]Pref, error) {
	var out []Pref

	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		val := resolve(m.Content[i+1])

		path := key
		if parent != "" {
			path = parent + "." + key
		}

		if val.Kind != yaml.MappingNode {
			v, err := scalarValue(val)
			if err != nil {
				return nil, fmt.Errorf("invalid value at %s: %w", path, err)
			}
			out = append(out, Pref{Key: path, Value: v})
			continue
		}

		enabledIdx := -1
		for j := 0; j+1 < len(val.Content); j += 2 {
			if val.Content[j].Value == enabledKey {
				enabledIdx = j
				break
			}
		}

		if enabledIdx >= 0 && len(val.Content) > 2 {
			// Hoist: the enabled value becomes the parent leaf, the
			// remaining keys keep nesting under the same path.
			ev, err := scalarValue(resolve(val.Content[enabledIdx+1]))
			if err != nil {
				return nil, fmt.Errorf("invalid value at %s.%s: %w", path, enabledKey, err)
			}
			out = append(out, Pref{Key: path, Value: ev})

			rest := &yaml.Node{Kind: yaml.MappingNode}
			for j := 0; j+1 < len(val.Content); j += 2 {
				if j == enabledIdx {
					continue
				}
				rest.Content = append(rest.Content, val.Content[j], val.Content[j+1])
			}
			sub, err := flattenMapping(rest, path)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}

		sub, err := flattenMapping(val, path)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}

	return out, nil
}

// resolve follows document wrappers and aliases down to the payload
// node. The source format is tree-structured, so alias chains are
// finite.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func scalarValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
