package btargs

import "github.com/apex/log"

// Reporter receives the conditions that make the Reader skip a line or an argument.
type Reporter interface {
	Report(err *LineError)
}

// LogReporter writes each condition as a warning.
type LogReporter struct {
	Log log.Interface
}

func (r LogReporter) Report(err *LineError) {
	logger := r.Log
	if logger == nil {
		logger = log.Log
	}
	logger.WithFields(log.Fields{
		"line": err.Line,
		"text": err.Text,
	}).Warn(err.Err.Error())
}

// Collector keeps reported conditions in memory.
type Collector struct {
	Errors []*LineError
}

func (c *Collector) Report(err *LineError) {
	c.Errors = append(c.Errors, err)
}
