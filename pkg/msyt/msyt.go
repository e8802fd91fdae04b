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

// Package msyt reads msyt message tables and flattens their entries into
// plain JSON dictionaries.
package msyt

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	// Ext is the extension of msyt message tables.
	Ext = ".msyt"
	// EntriesKey is the top-level key holding the messages of a table.
	EntriesKey = "entries"
)

// ErrNoEntries is returned when a document has no entries mapping.
var ErrNoEntries = errors.New("msyt: document has no entries mapping")

// Document is a decoded message table.
type Document struct {
	// Entries maps message keys to their plain payloads.
	Entries map[string]interface{}
}

// Load decodes one msyt document from r with the tags known to reg. A nil reg
// uses NewRegistry.
func Load(r io.Reader, reg *Registry) (*Document, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	var root yaml.Node

	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoEntries
		}
		return nil, fmt.Errorf("msyt: %w", err)
	}

	v, err := reg.Resolve(&root)
	if err != nil {
		return nil, fmt.Errorf("msyt: %w", err)
	}

	top, ok := v.(map[string]interface{})
	if !ok {
		return nil, ErrNoEntries
	}

	entries, ok := top[EntriesKey].(map[string]interface{})
	if !ok {
		return nil, ErrNoEntries
	}

	return &Document{Entries: entries}, nil
}

// MessageID joins a table path and an entry key into a message identifier.
func MessageID(base, key string) string {
	return base + ":" + key
}

// Flatten keys every entry of doc by its message identifier under base.
func Flatten(base string, doc *Document) map[string]interface{} {
	data := make(map[string]interface{}, len(doc.Entries))

	for key, entry := range doc.Entries {
		data[MessageID(base, key)] = entry
	}

	return data
}
