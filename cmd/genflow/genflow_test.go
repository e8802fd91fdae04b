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

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mys721tx/flowdump-go/pkg/flowchart"
)

const helperEnv = "GENFLOW_TEST_HELPER"

// TestHelperProcess is not a real test. It is the decoder run by the tests:
// it reads "name:entry,entry" and prints a flow with a single entry node.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	in, _ := io.ReadAll(os.Stdin)
	if strings.HasPrefix(string(in), "corrupt") {
		fmt.Fprint(os.Stderr, "bad magic\n")
		os.Exit(1)
	}

	name, eps, _ := strings.Cut(strings.TrimSpace(string(in)), ":")

	out := map[string]interface{}{
		"name":         name,
		"entry_points": strings.FieldsFunc(eps, func(r rune) bool { return r == ',' }),
		"graph": []interface{}{
			map[string]interface{}{"type": "node", "id": 0, "node_type": "entry", "data": map[string]interface{}{"name": name}},
		},
	}

	b, _ := json.Marshal(out)
	os.Stdout.Write(b)
	os.Exit(0)
}

type fixture struct {
	content string
	dest    string
	csv     string
}

func newFixture(t *testing.T, index string, flows map[string]string) *fixture {
	t.Helper()

	f := &fixture{content: t.TempDir(), dest: t.TempDir()}
	f.csv = filepath.Join(t.TempDir(), "resources.csv")

	require.NoError(t, os.WriteFile(f.csv, []byte(index), 0644))

	for rel, c := range flows {
		fn := filepath.Join(f.content, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(fn), 0755))
		require.NoError(t, os.WriteFile(fn, []byte(c), 0644))
	}

	return f
}

func (f *fixture) args(extra ...string) []string {
	decoder := os.Args[0] + " -test.run=^TestHelperProcess$ --"

	return append([]string{
		"--content-dir", f.content,
		"--resource-csv", f.csv,
		"--dest-dir", f.dest,
		"--decoder", decoder,
		"--log-level", "error",
	}, extra...)
}

func destFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names
}

func TestRun(t *testing.T) {
	t.Setenv(helperEnv, "1")

	f := newFixture(t,
		"Hash,Name,Full path\n"+
			"0x1,Foo.bfevfl,EventFlow/Foo.beventpack\n"+
			"0x2,Foo.bfres,Model/Foo.sbfres\n"+
			"0x3,Demo001_0.bfevfl,Event/Demo001_0.beventpack/EventFlow/Demo001_0.bfevfl\n"+
			"0x4,Npc_Kass.bfevfl,Event/Npc_Kass.beventpack/EventFlow/Npc_Kass.bfevfl\n",
		map[string]string{
			"EventFlow/Foo.sbeventpack":                              "Foo:Start",
			"Event/Demo001_0.sbeventpack/EventFlow/Demo001_0.bfevfl": "Demo001_0:Demo",
			"Event/Npc_Kass.sbeventpack/EventFlow/Npc_Kass.bfevfl":   "Npc_Kass:Talk,Near",
		})

	tables := t.TempDir()
	demo := filepath.Join(tables, "demo.txt")
	actors := filepath.Join(tables, "actors.json")
	require.NoError(t, os.WriteFile(demo, []byte("| Demo001_0 || Opening || 目覚め || Intro || 導入\n"), 0644))
	require.NoError(t, os.WriteFile(actors, []byte(`{"Demo001_0":"Link","Npc_Kass":"Kass"}`), 0644))

	var stderr bytes.Buffer
	require.NoError(t, run(f.args("--demo-list", demo, "--actor-names", actors), &stderr))

	assert.ElementsMatch(t,
		[]string{"Foo.json", "Demo001_0.json", "Npc_Kass.json", flowchart.IndexFile},
		destFiles(t, f.dest))

	b, err := os.ReadFile(filepath.Join(f.dest, flowchart.IndexFile))
	require.NoError(t, err)

	var index []flowchart.IndexEntry
	require.NoError(t, json.Unmarshal(b, &index))

	assert.Equal(t, []flowchart.IndexEntry{
		{Name: "Demo001_0", EntryPoints: []string{"Demo"}, Description: "Intro - Opening (導入 - 目覚め)"},
		{Name: "Foo", EntryPoints: []string{"Start"}, Description: ""},
		{Name: "Npc_Kass", EntryPoints: []string{"Talk", "Near"}, Description: "Kass"},
	}, index)

	b, err = os.ReadFile(filepath.Join(f.dest, "Foo.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"data":{"name":"Foo"},"id":0,"node_type":"entry","type":"node"}]`, string(b))
}

func TestRunWithoutTables(t *testing.T) {
	t.Setenv(helperEnv, "1")

	f := newFixture(t,
		"Hash,Name,Full path\n0x1,Foo.bfevfl,EventFlow/Foo.beventpack\n",
		map[string]string{"EventFlow/Foo.sbeventpack": "Foo:Start"})

	var stderr bytes.Buffer
	require.NoError(t, run(f.args(), &stderr))

	b, err := os.ReadFile(filepath.Join(f.dest, flowchart.IndexFile))
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Foo","entry_points":["Start"],"description":""}]`, string(b))
}

func TestRunPreconditions(t *testing.T) {
	f := newFixture(t, "Hash,Name,Full path\n", nil)
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "missing content dir",
			args:    []string{"--content-dir", missing, "--resource-csv", f.csv, "--dest-dir", f.dest},
			message: "content_dir and dest_dir must be a directory",
		},
		{
			name:    "dest dir is a file",
			args:    []string{"--content-dir", f.content, "--resource-csv", f.csv, "--dest-dir", f.csv},
			message: "content_dir and dest_dir must be a directory",
		},
		{
			name:    "resource csv is a directory",
			args:    []string{"--content-dir", f.content, "--resource-csv", f.content, "--dest-dir", f.dest},
			message: "resource_csv must be a file",
		},
		{
			name:    "missing resource csv",
			args:    []string{"--content-dir", f.content, "--resource-csv", missing, "--dest-dir", f.dest},
			message: "resource_csv must be a file",
		},
		{
			name:    "missing required flag",
			args:    []string{"--content-dir", f.content, "--dest-dir", f.dest},
			message: "are required",
		},
		{
			name:    "stray argument stops flag parsing",
			args:    []string{"--content-dir", f.content, "stray", "--resource-csv", f.csv, "--dest-dir", f.dest},
			message: "unexpected arguments",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			message: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer

			err := run(tt.args, &stderr)

			var ee *exitError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, 1, ee.code)
			assert.Contains(t, ee.msg, tt.message)
			assert.Empty(t, destFiles(t, f.dest))
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer

	assert.NoError(t, run([]string{"-h"}, &stderr))
	assert.Contains(t, stderr.String(), "-resource-csv")
}

func TestRunPanicsOnDecodeFailure(t *testing.T) {
	t.Setenv(helperEnv, "1")

	f := newFixture(t,
		"Hash,Name,Full path\n"+
			"0x1,A.bfevfl,EventFlow/A.bfevfl\n"+
			"0x2,B.bfevfl,EventFlow/B.bfevfl\n",
		map[string]string{
			"EventFlow/A.bfevfl": "A:Start",
			"EventFlow/B.bfevfl": "corrupt",
		})

	var stderr bytes.Buffer
	assert.Panics(t, func() {
		run(f.args(), &stderr)
	})

	assert.Equal(t, []string{"A.json"}, destFiles(t, f.dest))
}

func TestRunPanicsOnMalformedIndex(t *testing.T) {
	f := newFixture(t, "Hash,Name\n0x1,A.bfevfl\n", nil)

	var stderr bytes.Buffer
	assert.Panics(t, func() {
		run(f.args(), &stderr)
	})

	assert.Empty(t, destFiles(t, f.dest))
}
