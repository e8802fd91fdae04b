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

	"github.com/mys721tx/flowdump-go/pkg/logging"
	"github.com/mys721tx/flowdump-go/pkg/msyt"
)

var (
	usg = `Usage: %[1]s [options] path-to-messages

Converts Message/Msg_<locale>.product.sarc/{EventFlowMsg,DemoMsg}/*.msyt under
path-to-messages to <out>/<dir>/<name>.json.

Options must precede path-to-messages.

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

// run is main with its arguments and output made explicit.
func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("genmsg", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		fmt.Fprintf(stderr, usg, fs.Name())
		fs.PrintDefaults()
	}

	out := fs.String("out", msyt.DefaultOutDir, "Directory the JSON tables are written to.")
	locale := fs.String("locale", msyt.DefaultLocale, "Message locale to convert.")
	level := fs.String("log-level", logging.DefaultLevel, "Log level: debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &exitError{code: 1, msg: err.Error()}
	}

	if fs.NArg() < 1 {
		return &exitError{code: 1, msg: fmt.Sprintf("Usage: %s path-to-messages", fs.Name())}
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return &exitError{code: 1, msg: fmt.Sprintf("unexpected arguments after %s: %q", fs.Arg(0), fs.Args()[1:])}
	}

	logger, err := logging.New(*level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	c := &msyt.Converter{
		Root:   fs.Arg(0),
		Locale: *locale,
		OutDir: *out,
		Logger: logger,
	}

	written, err := c.Run()
	if err != nil {
		logger.Panic("Unable to convert messages", zap.Error(err))
	}

	logger.Info("done", zap.Int("files", len(written)))

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
