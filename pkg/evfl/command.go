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

package evfl

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultCommand is the decoder helper run when none is configured.
const DefaultCommand = "evfl-graph"

// Command decodes flows by running a helper program. The helper reads one
// event flow binary on standard input and writes a JSON object to standard
// output:
//
//	{"name": "Foo", "entry_points": ["Talk"], "graph": [...]}
//
// The graph is kept as is and returned by Graph. Numbers keep their textual
// form.
type Command struct {
	Path string
	Args []string
}

// NewCommand splits cmdline on white space into a program and its arguments.
func NewCommand(cmdline string) (*Command, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, errors.New("evfl: empty decoder command")
	}

	return &Command{Path: fields[0], Args: fields[1:]}, nil
}

type commandOutput struct {
	Name        string      `json:"name"`
	EntryPoints []string    `json:"entry_points"`
	Graph       interface{} `json:"graph"`
}

// Decode runs the helper on b.
func (c *Command) Decode(b []byte) (*Flow, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Stdin = bytes.NewReader(b)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("evfl: %s: %w: %s", c.Path, err, msg)
		}
		return nil, fmt.Errorf("evfl: %s: %w", c.Path, err)
	}

	var out commandOutput

	dec := json.NewDecoder(&stdout)
	dec.UseNumber()

	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("evfl: %s: malformed output: %w", c.Path, err)
	}

	if out.Graph == nil {
		return nil, fmt.Errorf("evfl: %s: output has no graph", c.Path)
	}

	f := &Flow{
		Flowchart: Flowchart{Name: out.Name},
		Graph:     out.Graph,
	}

	for _, name := range out.EntryPoints {
		f.Flowchart.EntryPoints = append(f.Flowchart.EntryPoints, EntryPoint{Name: name})
	}

	return f, nil
}

// Graph returns the graph the helper rendered for f.
func (c *Command) Graph(f *Flow) (interface{}, error) {
	return Attached.Graph(f)
}
