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

// Package flowchart converts event flow binaries into flowchart graph files and
// builds the index of converted flows.
package flowchart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/mys721tx/flowdump-go/pkg/evfl"
	"github.com/mys721tx/flowdump-go/pkg/jsonout"
	"github.com/mys721tx/flowdump-go/pkg/logging"
	"github.com/mys721tx/flowdump-go/pkg/resource"
)

// IndexFile is the name of the index written to the destination directory.
const IndexFile = "__INDEX__.json"

// IndexEntry lists one converted flow.
type IndexEntry struct {
	Name        string   `json:"name"`
	EntryPoints []string `json:"entry_points"`
	Description string   `json:"description"`
}

// SortIndex orders entries by name.
func SortIndex(entries []IndexEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}

// Generator writes the flowchart graph of every flow to DestDir, then the
// index of all flows.
type Generator struct {
	ContentDir   string
	DestDir      string
	Decoder      evfl.Decoder
	Grapher      evfl.Grapher
	Descriptions Descriptions
	Logger       *zap.Logger
}

// Run converts the flows at paths, relative to ContentDir, in order. The index
// is written only when every flow converted; on error the graphs written so
// far are left in place.
func (g *Generator) Run(paths []string) ([]IndexEntry, error) {
	l := logging.OrNop(g.Logger)

	index := make([]IndexEntry, 0, len(paths))

	for _, p := range paths {
		e, err := g.convert(l, p)
		if err != nil {
			return nil, err
		}
		index = append(index, e)
	}

	SortIndex(index)

	if err := jsonout.WriteFile(filepath.Join(g.DestDir, IndexFile), index); err != nil {
		return nil, err
	}

	l.Info("wrote index", zap.Int("flows", len(index)))

	return index, nil
}

// convert writes the graph of the flow at p and returns its index entry.
func (g *Generator) convert(l *zap.Logger, p string) (IndexEntry, error) {
	fn := filepath.Join(g.ContentDir, filepath.FromSlash(p))

	l.Info("converting", zap.String("file", fn))

	b, err := os.ReadFile(fn)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("unable to read %s: %w", fn, err)
	}

	flow, err := g.Decoder.Decode(b)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("unable to decode %s: %w", fn, err)
	}
	if flow == nil {
		return IndexEntry{}, fmt.Errorf("unable to decode %s: %w", fn, evfl.ErrNilFlow)
	}

	graph, err := g.Grapher.Graph(flow)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("unable to generate graph for %s: %w", fn, err)
	}

	name, err := resource.FlowName(p)
	if err != nil {
		return IndexEntry{}, err
	}

	dst := filepath.Join(g.DestDir, filepath.FromSlash(name)+".json")

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return IndexEntry{}, fmt.Errorf("unable to create %s: %w", filepath.Dir(dst), err)
	}

	if err := jsonout.WriteFile(dst, graph); err != nil {
		return IndexEntry{}, err
	}

	return IndexEntry{
		Name:        name,
		EntryPoints: flow.EntryPointNames(),
		Description: g.Descriptions.Describe(name),
	}, nil
}
