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

// Package resource reads the resource index CSV and selects the event flow
// binaries it lists.
package resource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// FlowExt is the extension of compiled event flow binaries.
	FlowExt = ".bfevfl"
	// PackExt is the container extension used by the index.
	PackExt = ".beventpack"
	// PackExtOnDisk is the container extension of the extracted content.
	PackExtOnDisk = ".sbeventpack"
	// FlowDir precedes the flow name in a resource path.
	FlowDir = "EventFlow/"
)

// Index columns.
const (
	ColHash     = "Hash"
	ColName     = "Name"
	ColFullPath = "Full path"
)

// ErrNoFlowDir is returned when a path has no FlowDir segment.
var ErrNoFlowDir = errors.New("resource: path has no " + FlowDir + " segment")

// Entry is one row of the resource index.
type Entry struct {
	Hash     string
	Name     string
	FullPath string
}

// ReadIndex reads every row of a resource index. The header must name the
// Hash, Name and Full path columns.
func ReadIndex(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("resource: empty index")
		}
		return nil, fmt.Errorf("resource: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		// Excel exports carry a byte order mark.
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[h] = i
	}

	for _, c := range []string{ColHash, ColName, ColFullPath} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("resource: index has no %q column", c)
		}
	}

	var entries []Entry

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("resource: %w", err)
		}

		entries = append(entries, Entry{
			Hash:     rec[cols[ColHash]],
			Name:     rec[cols[ColName]],
			FullPath: rec[cols[ColFullPath]],
		})
	}

	return entries, nil
}

// IsFlow reports whether e names an event flow binary.
func (e Entry) IsFlow() bool {
	return strings.HasSuffix(e.Name, FlowExt)
}

// ContentPath returns the path of e inside the extracted content.
func (e Entry) ContentPath() string {
	return strings.ReplaceAll(e.FullPath, PackExt, PackExtOnDisk)
}

// FlowPaths returns the content paths of the event flow binaries in entries,
// in index order.
func FlowPaths(entries []Entry) []string {
	var paths []string

	for _, e := range entries {
		if !e.IsFlow() {
			continue
		}
		paths = append(paths, e.ContentPath())
	}

	return paths
}

// FlowName returns the flow name of a content path: the path after the last
// FlowDir, without the flow or container extension.
func FlowName(p string) (string, error) {
	i := strings.LastIndex(p, FlowDir)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrNoFlowDir, p)
	}

	name := p[i+len(FlowDir):]

	for _, ext := range []string{FlowExt, PackExtOnDisk, PackExt} {
		if strings.HasSuffix(name, ext) {
			name = strings.TrimSuffix(name, ext)
			break
		}
	}

	if name == "" {
		return "", fmt.Errorf("resource: empty flow name: %s", p)
	}

	return name, nil
}
