package btargs

import (
	"bufio"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/pkg/errors"
)

// maxLineSize bounds a single backtrace line; values printed with a large
// print limit easily exceed bufio's default.
const maxLineSize = 16 * 1024 * 1024

// Reader builds a Backtrace from debugger "backtrace full" output.
type Reader struct {
	config   Config
	reporter Reporter
	log      log.Interface
}

func NewReader(config Config, reporter Reporter) *Reader {
	if reporter == nil {
		reporter = LogReporter{}
	}

	return &Reader{
		config:   config,
		reporter: reporter,
		log:      log.Log,
	}
}

// WithLogger sets the logger used for debug output.
func (r *Reader) WithLogger(logger log.Interface) *Reader {
	r.log = logger
	return r
}

// Read skips input up to the thread header, then collects frames until the
// section ends. Malformed lines are reported and skipped; only a failure of
// the underlying reader is returned.
func (r *Reader) Read(input io.Reader) (*Backtrace, error) {
	backtrace := &Backtrace{}
	markers := r.config.Markers

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		lineNumber = 0
		seeking    = true
		current    = -1
		reported   = 0
		seen       = hashset.New()
	)

	closeFrame := func() {
		if current < 0 {
			return
		}
		frame := backtrace.frames[current]
		r.log.WithFields(log.Fields{
			"id":        frame.ID,
			"arguments": strings.Join(frame.ArgumentNames(), ","),
		}).Debug("frame done")
		current = -1
	}

	report := func(line string, err error) {
		reported++
		r.reporter.Report(&LineError{
			Line: lineNumber,
			Text: line,
			Err:  err,
		})
	}

scan:
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if seeking {
			if strings.HasPrefix(line, markers.Thread) {
				seeking = false
				r.log.WithField("line", lineNumber).Debug("thread section found")
			}
			continue
		}

		switch markers.Classify(line) {
		case ThreadHeader, NoSymbolInfo, FromMarker:
			closeFrame()
			r.log.WithField("line", lineNumber).Debug("end of thread section")
			break scan

		case FrameStart:
			closeFrame()
			header, err := ParseFrameHeader(line)
			if err != nil {
				// Bindings that follow belong to the broken frame.
				report(line, err)
				continue
			}

			if seen.Contains(header.ID) {
				r.log.WithFields(log.Fields{
					"line": lineNumber,
					"id":   header.ID,
				}).Warn("duplicate frame id")
			}
			seen.Add(header.ID)

			current = backtrace.append(NewFrame(header.ID, header.Name))
			r.log.WithFields(log.Fields{
				"id":   header.ID,
				"name": header.Name,
			}).Debug("frame")

			if r.config.InlineArguments && header.ArgsStart >= 0 {
				args, _, err := markers.ParseInlineArguments(line, header.ArgsStart)
				frame := &backtrace.frames[current]
				for _, arg := range args {
					if arg.Truncated {
						r.log.WithFields(log.Fields{
							"line":     lineNumber,
							"argument": arg.Name,
						}).Debug("value truncated by debugger")
					}
					if !markers.optimizedOut(arg.Value) {
						frame.SetArgument(arg.Name, arg.Value)
					}
				}
				if err != nil {
					report(line, err)
				}
			}

		case Binding:
			if current < 0 {
				continue
			}

			name, value, keep, err := markers.ParseBinding(line)
			if err != nil {
				report(line, err)
				continue
			}
			if keep {
				backtrace.frames[current].SetArgument(name, value)
			}
		}
	}

	closeFrame()

	if err := scanner.Err(); err != nil {
		return backtrace, errors.Wrapf(err, "read backtrace line %d", lineNumber+1)
	}

	r.log.WithFields(log.Fields{
		"frames":   backtrace.Len(),
		"reported": reported,
	}).Debug("backtrace read")

	return backtrace, nil
}
