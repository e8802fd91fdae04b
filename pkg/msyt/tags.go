// flowdump-go: event flow and message dump suite
// Copyright (C) 2018  Yishen Miao
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package msyt

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// Handler turns a node carrying a custom tag into a plain value. r resolves
// child nodes.
type Handler func(r *Registry, n *yaml.Node) (interface{}, error)

// Registry maps custom tags to handlers. The zero value knows no tags.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns a Registry with the msyt tags registered.
func NewRegistry() *Registry {
	r := new(Registry)

	for _, tag := range []string{"!u", "!str32", "!str64", "!str256", "!vec3", "!color"} {
		r.Register(tag, Scalar)
	}

	for _, tag := range []string{"!io", "!obj", "!list"} {
		r.Register(tag, Collection)
	}

	return r
}

// Register binds tag to h, replacing any previous handler.
func (r *Registry) Register(tag string, h Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}
	r.handlers[tag] = h
}

// Scalar returns the raw text of a scalar node. Collections resolve to their
// plain value.
func Scalar(r *Registry, n *yaml.Node) (interface{}, error) {
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	return r.plain(n)
}

// Collection returns the plain mapping or sequence under the tag.
func Collection(r *Registry, n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return r.plain(n)
	}
	return nil, fmt.Errorf("line %d: %s expects a mapping or sequence", n.Line, n.Tag)
}

// isCustom reports whether tag is a local tag, not a YAML core tag.
func isCustom(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

// Resolve converts n into plain values: map[string]interface{},
// []interface{} and scalars. Custom tags are dispatched to their handlers.
func (r *Registry) Resolve(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return r.Resolve(n.Content[0])
	case yaml.AliasNode:
		return r.Resolve(n.Alias)
	}

	if n.Tag != "" && isCustom(n.Tag) {
		h, ok := r.handlers[n.Tag]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown tag %s", n.Line, n.Tag)
		}
		return h(r, n)
	}

	return r.plain(n)
}

// plain resolves n ignoring its tag.
func (r *Registry) plain(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return r.mapping(n)
	case yaml.SequenceNode:
		s := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := r.Resolve(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.DocumentNode, yaml.AliasNode:
		return r.Resolve(n)
	}

	return nil, fmt.Errorf("line %d: unexpected node kind %d", n.Line, n.Kind)
}

func (r *Registry) mapping(n *yaml.Node) (map[string]interface{}, error) {
	m := make(map[string]interface{}, len(n.Content)/2)

	var merged []map[string]interface{}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == mergeTag {
			ms, err := r.mergeSources(v)
			if err != nil {
				return nil, err
			}
			merged = append(merged, ms...)
			continue
		}

		key, err := r.key(k)
		if err != nil {
			return nil, err
		}

		val, err := r.Resolve(v)
		if err != nil {
			return nil, err
		}

		m[key] = val
	}

	// Explicit keys win over merged ones, earlier merge sources over later.
	for _, src := range merged {
		for k, v := range src {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
	}

	return m, nil
}

func (r *Registry) mergeSources(n *yaml.Node) ([]map[string]interface{}, error) {
	var nodes []*yaml.Node

	if n.Kind == yaml.SequenceNode {
		nodes = n.Content
	} else {
		nodes = []*yaml.Node{n}
	}

	srcs := make([]map[string]interface{}, 0, len(nodes))
	for _, c := range nodes {
		v, err := r.Resolve(c)
		if err != nil {
			return nil, err
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("line %d: merge source is not a mapping", c.Line)
		}
		srcs = append(srcs, m)
	}

	return srcs, nil
}

func (r *Registry) key(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping key is not a scalar", n.Line)
	}

	return n.Value, nil
}
