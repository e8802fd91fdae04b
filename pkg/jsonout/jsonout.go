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

// Package jsonout writes compact JSON files. Values that have no JSON form are
// written as their string representation.
package jsonout

import (
	"encoding"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/goccy/go-json"
)

var (
	marshalerType     = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Coerce returns v with every value that cannot be encoded as JSON replaced by
// its string form. Maps with non-string keys are rekeyed by the string form of
// their keys.
func Coerce(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return v
	case float32:
		return coerceFloat(float64(t), v)
	case float64:
		return coerceFloat(t, v)
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = Coerce(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = Coerce(e)
		}
		return s
	}

	return coerceValue(reflect.ValueOf(v))
}

func coerceValue(rv reflect.Value) interface{} {
	if rv.Type().Implements(marshalerType) || rv.Type().Implements(textMarshalerType) {
		return rv.Interface()
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Coerce(rv.Elem().Interface())
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = Coerce(iter.Value().Interface())
		}
		return m
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		// []byte keeps its base64 encoding.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}
		fallthrough
	case reflect.Array:
		s := make([]interface{}, rv.Len())
		for i := range s {
			s[i] = Coerce(rv.Index(i).Interface())
		}
		return s
	case reflect.Struct:
		// A struct with a field JSON cannot hold is written whole as a string.
		if _, err := json.Marshal(rv.Interface()); err != nil {
			return fmt.Sprint(rv.Interface())
		}
		return rv.Interface()
	case reflect.Float32, reflect.Float64:
		return coerceFloat(rv.Float(), rv.Interface())
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Interface()
	}

	return fmt.Sprint(rv.Interface())
}

// coerceFloat returns v, or its string form when f is NaN or infinite.
func coerceFloat(f float64, v interface{}) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(v)
	}
	return v
}

// Marshal encodes v as compact JSON after coercion.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(Coerce(v))
}

// WriteFile encodes v as compact JSON and writes it to fn, replacing any
// existing file.
func WriteFile(fn string, v interface{}) error {
	b, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("unable to encode %s: %w", fn, err)
	}

	if err := os.WriteFile(fn, b, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", fn, err)
	}

	return nil
}
