/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme holds one layer of token configuration: a table per category plus
// keyframe definitions. Category order follows declaration order.
type Theme struct {
	order     *OrderedMap[bool]
	tables    map[Category]*Table
	keyframes *OrderedMap[*Keyframe]
}

// NewTheme creates an empty theme.
func NewTheme() *Theme {
	return &Theme{
		order:     NewOrderedMap[bool](),
		tables:    make(map[Category]*Table),
		keyframes: NewOrderedMap[*Keyframe](),
	}
}

// Categories returns the declared categories in order.
func (t *Theme) Categories() []Category {
	if t == nil {
		return nil
	}
	keys := t.order.Keys()
	cats := make([]Category, len(keys))
	for i, k := range keys {
		cats[i] = Category(k)
	}
	return cats
}

// Has reports whether the category is declared in this theme.
func (t *Theme) Has(c Category) bool {
	return t != nil && t.order.Has(string(c))
}

// Table returns the table for a category, or nil when absent.
// The keyframes category has no table; use Keyframes.
func (t *Theme) Table(c Category) *Table {
	if t == nil {
		return nil
	}
	return t.tables[c]
}

// SetTable declares a category with the given table.
func (t *Theme) SetTable(c Category, table *Table) {
	t.order.Set(string(c), true)
	t.tables[c] = table
}

// Keyframes returns the keyframe definitions by name.
func (t *Theme) Keyframes() *OrderedMap[*Keyframe] {
	if t == nil {
		return nil
	}
	return t.keyframes
}

// SetKeyframe declares or replaces a keyframe definition.
func (t *Theme) SetKeyframe(k *Keyframe) {
	t.order.Set(string(Keyframes), true)
	t.keyframes.Set(k.Name, k)
}

// Clone returns a copy whose tables can be modified independently.
func (t *Theme) Clone() *Theme {
	c := NewTheme()
	if t == nil {
		return c
	}
	for _, cat := range t.Categories() {
		if cat == Keyframes {
			c.order.Set(string(Keyframes), true)
			continue
		}
		c.SetTable(cat, t.tables[cat].Clone())
	}
	for _, k := range t.keyframes.All() {
		c.keyframes.Set(k.Name, k)
	}
	return c
}

// Override returns a copy of t where every category declared in o replaces
// t's category wholesale.
func (t *Theme) Override(o *Theme) *Theme {
	result := t.Clone()
	if o == nil {
		return result
	}
	for _, cat := range o.Categories() {
		if cat == Keyframes {
			result.keyframes = o.keyframes.Clone()
			result.order.Set(string(Keyframes), true)
			continue
		}
		result.SetTable(cat, o.tables[cat].Clone())
	}
	return result
}

// Merge layers ext over base: tables merge by key with ext winning,
// keyframes merge by name. Neither input is modified.
func Merge(base, ext *Theme) *Theme {
	result := base.Clone()
	if ext == nil {
		return result
	}
	for _, cat := range ext.Categories() {
		if cat == Keyframes {
			result.order.Set(string(Keyframes), true)
			for _, k := range ext.keyframes.All() {
				result.keyframes.Set(k.Name, k)
			}
			continue
		}
		result.SetTable(cat, MergeTables(result.tables[cat], ext.tables[cat]))
	}
	return result
}

// UnmarshalYAML decodes a theme mapping, preserving key order.
// Nested tables are flattened with "-" and a DEFAULT key maps to its parent.
func (t *Theme) UnmarshalYAML(node *yaml.Node) error {
	*t = *NewTheme()
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &ConfigError{Message: "theme must be a mapping", Err: ErrMalformedCategory}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		cat := Category(node.Content[i].Value)
		value := resolveAlias(node.Content[i+1])
		if cat == Keyframes {
			if err := t.decodeKeyframes(value); err != nil {
				return err
			}
			continue
		}
		if value.Kind != yaml.MappingNode {
			return &ConfigError{
				Category: cat,
				Message:  fmt.Sprintf("expected a mapping of tokens, got %s", kindName(value)),
				Err:      ErrMalformedCategory,
			}
		}
		table := NewTable()
		if err := flatten("", value, table, cat); err != nil {
			return err
		}
		t.SetTable(cat, table)
	}
	return nil
}

func (t *Theme) decodeKeyframes(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &ConfigError{
			Category: Keyframes,
			Message:  fmt.Sprintf("expected a mapping of keyframes, got %s", kindName(node)),
			Err:      ErrMalformedCategory,
		}
	}
	t.order.Set(string(Keyframes), true)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		steps := resolveAlias(node.Content[i+1])
		if steps.Kind != yaml.MappingNode {
			return &ConfigError{Category: Keyframes, Key: name, Message: "expected a mapping of steps", Err: ErrMalformedCategory}
		}
		kf := &Keyframe{Name: name}
		for j := 0; j+1 < len(steps.Content); j += 2 {
			selector := steps.Content[j].Value
			props := resolveAlias(steps.Content[j+1])
			if props.Kind != yaml.MappingNode {
				return &ConfigError{
					Category: Keyframes,
					Key:      name,
					Message:  fmt.Sprintf("step %q: expected a mapping of properties", selector),
					Err:      ErrMalformedCategory,
				}
			}
			step := Step{Selector: selector}
			for k := 0; k+1 < len(props.Content); k += 2 {
				value, err := scalarValue(resolveAlias(props.Content[k+1]))
				if err != nil {
					return &ConfigError{Category: Keyframes, Key: name, Message: err.Error(), Err: ErrMalformedCategory}
				}
				step.Declarations = append(step.Declarations, Declaration{
					Property: Kebab(props.Content[k].Value),
					Value:    value,
				})
			}
			kf.Steps = append(kf.Steps, step)
		}
		t.keyframes.Set(name, kf)
	}
	return nil
}

// flatten copies a (possibly nested) mapping into table.
func flatten(prefix string, node *yaml.Node, table *Table, cat Category) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := joinKey(prefix, node.Content[i].Value)
		value := resolveAlias(node.Content[i+1])
		if value.Kind == yaml.MappingNode {
			if err := flatten(key, value, table, cat); err != nil {
				return err
			}
			continue
		}
		s, err := scalarValue(value)
		if err != nil {
			return &ConfigError{Category: cat, Key: key, Message: err.Error(), Err: ErrMalformedCategory}
		}
		table.Set(key, s)
	}
	return nil
}

func joinKey(prefix, key string) string {
	switch {
	case key == "DEFAULT" && prefix != "":
		return prefix
	case prefix == "":
		return key
	default:
		return prefix + "-" + key
	}
}

// scalarValue returns a scalar's text; sequences of scalars are joined with ", ".
func scalarValue(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("expected a list of values, got nested %s", kindName(item))
			}
			parts = append(parts, item.Value)
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", fmt.Errorf("expected a value, got %s", kindName(node))
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return resolveAlias(node.Content[0])
	}
	return node
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown node"
	}
}
