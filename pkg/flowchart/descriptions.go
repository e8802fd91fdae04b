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

package flowchart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

const (
	demoRowPrefix = "| Demo"
	demoColumnSep = "||"
	demoColumns   = 5
)

// ParseDemoList reads a demo list table. Rows start with "| Demo" and hold
// five "||" separated columns: name, description, Japanese description, group
// and Japanese group. Other lines are ignored.
func ParseDemoList(r io.Reader) (map[string]string, error) {
	d := make(map[string]string)

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; s.Scan(); n++ {
		line := s.Text()
		if !strings.HasPrefix(line, demoRowPrefix) {
			continue
		}

		cols := strings.Split(line[2:], demoColumnSep)
		if len(cols) != demoColumns {
			return nil, fmt.Errorf("demo list line %d: expecting %d columns, got %d", n, demoColumns, len(cols))
		}

		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		name, desc, descJP, group, groupJP := cols[0], cols[1], cols[2], cols[3], cols[4]
		d[name] = fmt.Sprintf("%s - %s (%s - %s)", group, desc, groupJP, descJP)
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("demo list: %w", err)
	}

	return d, nil
}

// LoadActorNames reads a JSON object mapping flow names to actor names.
// Entries whose value is not a string are skipped.
func LoadActorNames(r io.Reader) (map[string]string, error) {
	var raw map[string]interface{}

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("actor names: %w", err)
	}

	if raw == nil {
		return nil, nil
	}

	names := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			names[k] = s
		}
	}

	return names, nil
}

// Descriptions resolves flow descriptions from the optional demo list and
// actor name tables.
type Descriptions struct {
	Demo   map[string]string
	Actors map[string]string
}

// Describe returns the demo description of name, else its actor name, else
// the empty string.
func (d Descriptions) Describe(name string) string {
	if desc := d.Demo[name]; desc != "" {
		return desc
	}
	return d.Actors[name]
}

// OpenDescriptions loads the tables at demoList and actorNames. An empty path
// leaves its table empty.
func OpenDescriptions(demoList, actorNames string) (Descriptions, error) {
	var d Descriptions

	if demoList != "" {
		f, err := os.Open(demoList)
		if err != nil {
			return d, fmt.Errorf("unable to open %s: %w", demoList, err)
		}
		defer f.Close()

		if d.Demo, err = ParseDemoList(f); err != nil {
			return d, err
		}
	}

	if actorNames != "" {
		f, err := os.Open(actorNames)
		if err != nil {
			return d, fmt.Errorf("unable to open %s: %w", actorNames, err)
		}
		defer f.Close()

		if d.Actors, err = LoadActorNames(f); err != nil {
			return d, err
		}
	}

	return d, nil
}
