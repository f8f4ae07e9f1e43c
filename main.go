package main

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/swind/go-btargs/btargs"
)

type flags struct {
	Backtrace string   `kong:"arg,help='Backtrace file written by the debugger, optionally gzipped.'"`
	Watch     []string `kong:"sep='none',placeholder='FUNC:ARG[:LABEL]',help='Watched frame function and argument. Repeatable, replaces the default list.'"`
	Plain     bool     `kong:"help='Ignore inline arguments and print values on one line.'"`
	Verbose   bool     `kong:"short='v',help='Log parsing progress.'"`
}

// Validate rejects malformed -watch values before anything is read.
func (f *flags) Validate() error {
	_, err := f.watchList()
	return err
}

func (f *flags) watchList() ([]btargs.WatchEntry, error) {
	entries := make([]btargs.WatchEntry, 0, len(f.Watch))
	for _, watch := range f.Watch {
		entry, err := btargs.ParseWatchEntry(watch)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (f *flags) config() (btargs.Config, error) {
	config := btargs.DefaultConfig()
	if f.Plain {
		config = btargs.PlainConfig()
	}

	watch, err := f.watchList()
	if err != nil {
		return config, err
	}
	if len(watch) > 0 {
		config.WatchList = watch
	}

	return config, nil
}

func main() {
	var cliFlags flags
	kong.Parse(&cliFlags,
		kong.Description("Print selected frame arguments from a debugger backtrace."),
		kong.Exit(func(code int) {
			// Usage errors and --help share the tool's exit codes.
			if code != 0 {
				code = 1
			}
			os.Exit(code)
		}),
	)

	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(log.WarnLevel)
	if cliFlags.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(cliFlags, os.Stdout, log.Log, !color.NoColor); err != nil {
		log.WithError(err).Error("btargs")
		os.Exit(1)
	}
}

// run reads the backtrace named by f and prints the watched arguments to
// stdout. Only configuration and open failures are returned.
func run(f flags, stdout io.Writer, logger log.Interface, useColor bool) error {
	config, err := f.config()
	if err != nil {
		return err
	}

	backtraceFile, err := os.Open(f.Backtrace)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", f.Backtrace)
	}
	defer backtraceFile.Close()

	var backtraceFileReader io.Reader
	if strings.HasSuffix(f.Backtrace, ".gz") {
		gzipReader, err := gzip.NewReader(backtraceFile)
		if err != nil {
			return errors.Wrapf(err, "failed to open gzip backtrace %s", f.Backtrace)
		}
		defer gzipReader.Close()
		backtraceFileReader = gzipReader
	} else {
		backtraceFileReader = bufio.NewReader(backtraceFile)
	}

	reader := btargs.NewReader(config, btargs.LogReporter{Log: logger}).WithLogger(logger)
	backtrace, err := reader.Read(backtraceFileReader)
	if err != nil {
		// Print what was read before the failure.
		logger.WithError(err).Error("reading backtrace")
	}

	printer := btargs.NewPrinter(config)
	printer.Color = useColor
	if err := printer.Print(backtrace, stdout); err != nil {
		logger.WithError(err).Error("writing output")
	}

	return nil
}
