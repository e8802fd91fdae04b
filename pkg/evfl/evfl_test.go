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

package evfl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mys721tx/flowdump-go/pkg/evfl"
)

func TestEntryPointNames(t *testing.T) {
	tests := []struct {
		name     string
		flow     *evfl.Flow
		expected []string
	}{
		{
			name: "ordered entry points",
			flow: &evfl.Flow{Flowchart: evfl.Flowchart{
				Name:        "Npc",
				EntryPoints: []evfl.EntryPoint{{Name: "Talk"}, {Name: "Near"}},
			}},
			expected: []string{"Talk", "Near"},
		},
		{
			name:     "no entry points",
			flow:     &evfl.Flow{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.flow.EntryPointNames()

			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAttached(t *testing.T) {
	t.Run("returns graph", func(t *testing.T) {
		graph := []interface{}{map[string]interface{}{"type": "node"}}

		got, err := evfl.Attached.Graph(&evfl.Flow{Graph: graph})

		require.NoError(t, err)
		assert.Equal(t, graph, got)
	})

	t.Run("nil flow", func(t *testing.T) {
		_, err := evfl.Attached.Graph(nil)

		assert.ErrorIs(t, err, evfl.ErrNilFlow)
	})

	t.Run("flow without graph", func(t *testing.T) {
		_, err := evfl.Attached.Graph(&evfl.Flow{Flowchart: evfl.Flowchart{Name: "Foo"}})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Foo")
	})
}

func TestFuncAdapters(t *testing.T) {
	testErr := errors.New("custom decode error")

	var d evfl.Decoder = evfl.DecoderFunc(func(b []byte) (*evfl.Flow, error) {
		return nil, testErr
	})
	_, err := d.Decode(nil)
	assert.Equal(t, testErr, err)

	var g evfl.Grapher = evfl.GrapherFunc(func(f *evfl.Flow) (interface{}, error) {
		return f.Flowchart.Name, nil
	})
	got, err := g.Graph(&evfl.Flow{Flowchart: evfl.Flowchart{Name: "Foo"}})
	assert.NoError(t, err)
	assert.Equal(t, "Foo", got)
}
