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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mys721tx/flowdump-go/pkg/evfl"
	"github.com/mys721tx/flowdump-go/pkg/flowchart"
	"github.com/mys721tx/flowdump-go/pkg/logging"
	"github.com/mys721tx/flowdump-go/pkg/resource"
)

var (
	usg = `Usage: %[1]s --content-dir DIR --resource-csv FILE --dest-dir DIR [options]

Writes <dest-dir>/<flow>.json for every event flow listed in the resource CSV
and <dest-dir>/__INDEX__.json listing them.

Options:
`
)

// exitError ends the program with code after printing msg.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

type options struct {
	contentDir  string
	resourceCSV string
	destDir     string
	demoList    string
	actorNames  string
	decoder     string
	logLevel    string
}

// parse reads the command line. A nil options and error means help was
// printed.
func parse(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("genflow", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		fmt.Fprintf(stderr, usg, fs.Name())
		fs.PrintDefaults()
	}

	o := new(options)

	fs.StringVar(&o.contentDir, "content-dir", "", "Extracted game content directory. Required.")
	fs.StringVar(&o.resourceCSV, "resource-csv", "", "Resource index CSV with Hash, Name and Full path columns. Required.")
	fs.StringVar(&o.destDir, "dest-dir", "", "Directory the flowcharts are written to. Required.")
	fs.StringVar(&o.demoList, "demo-list", "", "Demo list table used for descriptions.")
	fs.StringVar(&o.actorNames, "actor-names", "", "JSON object mapping flow names to actor names.")
	fs.StringVar(&o.decoder, "decoder", evfl.DefaultCommand, "Event flow decoder command.")
	fs.StringVar(&o.logLevel, "log-level", logging.DefaultLevel, "Log level: debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, &exitError{code: 1, msg: err.Error()}
	}

	if fs.NArg() > 0 {
		fs.Usage()
		return nil, &exitError{code: 1, msg: fmt.Sprintf("unexpected arguments: %q", fs.Args())}
	}

	if o.contentDir == "" || o.resourceCSV == "" || o.destDir == "" {
		fs.Usage()
		return nil, &exitError{code: 1, msg: "--content-dir, --resource-csv and --dest-dir are required"}
	}

	return o, nil
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// validate checks the paths before anything is written.
func (o *options) validate() error {
	if !isDir(o.contentDir) || !isDir(o.destDir) {
		return &exitError{code: 1, msg: "content_dir and dest_dir must be a directory"}
	}

	if !isFile(o.resourceCSV) {
		return &exitError{code: 1, msg: "resource_csv must be a file"}
	}

	return nil
}

// flowPaths reads the event flow paths listed in the resource CSV at fn.
func flowPaths(fn string) ([]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := resource.ReadIndex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	return resource.FlowPaths(entries), nil
}

// run is main with its arguments and output made explicit.
func run(args []string, stderr io.Writer) error {
	o, err := parse(args, stderr)
	if err != nil || o == nil {
		return err
	}

	if err := o.validate(); err != nil {
		return err
	}

	logger, err := logging.New(o.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	paths, err := flowPaths(o.resourceCSV)
	if err != nil {
		logger.Panic("Unable to read resource index", zap.Error(err))
	}

	descriptions, err := flowchart.OpenDescriptions(o.demoList, o.actorNames)
	if err != nil {
		logger.Panic("Unable to read descriptions", zap.Error(err))
	}

	decoder, err := evfl.NewCommand(o.decoder)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	g := &flowchart.Generator{
		ContentDir:   o.contentDir,
		DestDir:      o.destDir,
		Decoder:      decoder,
		Grapher:      decoder,
		Descriptions: descriptions,
		Logger:       logger,
	}

	if _, err := g.Run(paths); err != nil {
		logger.Panic("Unable to generate flowcharts", zap.Error(err))
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
