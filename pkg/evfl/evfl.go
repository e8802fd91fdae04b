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

// Package evfl describes decoded event flows and the collaborators that decode
// them and render their flowchart graphs.
package evfl

import "errors"

// ErrNilFlow is returned when a nil flow is given to a Grapher.
var ErrNilFlow = errors.New("evfl: nil flow")

// EntryPoint is a named entry into a flowchart.
type EntryPoint struct {
	Name string
}

// Flowchart is the flowchart of an event flow.
type Flowchart struct {
	Name        string
	EntryPoints []EntryPoint
}

// Flow is a decoded event flow binary.
type Flow struct {
	Flowchart Flowchart
	// Graph is the graph payload attached by decoders that render graphs
	// while decoding. It is nil otherwise.
	Graph interface{}
}

// EntryPointNames returns the entry point names in flowchart order. The result
// is never nil.
func (f *Flow) EntryPointNames() []string {
	names := make([]string, 0, len(f.Flowchart.EntryPoints))

	for _, ep := range f.Flowchart.EntryPoints {
		names = append(names, ep.Name)
	}

	return names
}

// Decoder decodes a compiled event flow binary.
type Decoder interface {
	Decode(b []byte) (*Flow, error)
}

// Grapher renders the flowchart graph of a decoded flow as a JSON-encodable
// value.
type Grapher interface {
	Graph(f *Flow) (interface{}, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(b []byte) (*Flow, error)

// Decode calls fn(b).
func (fn DecoderFunc) Decode(b []byte) (*Flow, error) {
	return fn(b)
}

// GrapherFunc adapts a function to Grapher.
type GrapherFunc func(f *Flow) (interface{}, error)

// Graph calls fn(f).
func (fn GrapherFunc) Graph(f *Flow) (interface{}, error) {
	return fn(f)
}

// Attached is a Grapher returning the graph a decoder attached to the flow.
var Attached Grapher = GrapherFunc(func(f *Flow) (interface{}, error) {
	if f == nil {
		return nil, ErrNilFlow
	}
	if f.Graph == nil {
		return nil, errors.New("evfl: flow " + f.Flowchart.Name + " has no graph")
	}
	return f.Graph, nil
})
