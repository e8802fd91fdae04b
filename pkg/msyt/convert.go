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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mys721tx/flowdump-go/pkg/jsonout"
	"github.com/mys721tx/flowdump-go/pkg/logging"
)

const (
	// DefaultLocale is the message locale converted when none is given.
	DefaultLocale = "USen"
	// DefaultOutDir is where converted tables are written.
	DefaultOutDir = "msg"
)

// DefaultDirs are the message directories converted by default.
var DefaultDirs = []string{"EventFlowMsg", "DemoMsg"}

// SarcDir returns the extracted message archive directory of locale under
// root.
func SarcDir(root, locale string) string {
	return filepath.Join(root, "Message", fmt.Sprintf("Msg_%s.product.sarc", locale))
}

// Converter writes one JSON dictionary per msyt table found under the message
// directories of a locale.
type Converter struct {
	Root     string
	Locale   string
	Dirs     []string
	OutDir   string
	Registry *Registry
	Logger   *zap.Logger
}

// Run converts every table and returns the written file names. It stops at
// the first error.
func (c *Converter) Run() ([]string, error) {
	locale := c.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	dirs := c.Dirs
	if dirs == nil {
		dirs = DefaultDirs
	}

	out := c.OutDir
	if out == "" {
		out = DefaultOutDir
	}

	reg := c.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	l := logging.OrNop(c.Logger)
	base := SarcDir(c.Root, locale)

	var written []string

	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(out, dir), 0755); err != nil {
			return written, fmt.Errorf("unable to create %s: %w", dir, err)
		}

		files, err := findFiles(filepath.Join(base, dir), Ext)
		if err != nil {
			return written, err
		}

		for _, fn := range files {
			l.Info("converting", zap.String("file", fn))

			rel, err := tablePath(base, fn)
			if err != nil {
				return written, err
			}

			dst, err := c.convert(reg, fn, rel, out)
			if err != nil {
				return written, err
			}

			written = append(written, dst)
		}
	}

	return written, nil
}

// convert writes the flattened entries of fn to out/rel.json.
func (c *Converter) convert(reg *Registry, fn, rel, out string) (string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return "", fmt.Errorf("unable to open %s: %w", fn, err)
	}
	defer f.Close()

	doc, err := Load(f, reg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn, err)
	}

	dst := filepath.Join(out, filepath.FromSlash(rel)+".json")

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("unable to create %s: %w", filepath.Dir(dst), err)
	}

	if err := jsonout.WriteFile(dst, Flatten(rel, doc)); err != nil {
		return "", err
	}

	return dst, nil
}

// tablePath returns the slash separated path of fn relative to base, without
// its extension.
func tablePath(base, fn string) (string, error) {
	rel, err := filepath.Rel(base, fn)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)

	return strings.TrimSuffix(rel, path.Ext(rel)), nil
}

// findFiles returns every file under root ending with ext in lexical order. A
// missing root has no files.
func findFiles(root, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			files = append(files, p)
		}
		return nil
	})

	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return files, nil
}
