package btargs

import (
	"bufio"
	"io"

	"github.com/emirpasic/gods/maps/hashmap"
	"github.com/fatih/color"
)

// Match is one watched frame found in a backtrace.
type Match struct {
	Frame Frame
	Entry WatchEntry
	Value string
	Found bool
}

// Printer walks a backtrace against the watch list.
type Printer struct {
	config Config
	// function name -> ascending watch list indexes
	index *hashmap.Map

	// Color highlights frame ids and arrows.
	Color bool
}

func NewPrinter(config Config) *Printer {
	index := hashmap.New()
	for i, entry := range config.WatchList {
		var positions []int
		if found, ok := index.Get(entry.Function); ok {
			positions = found.([]int)
		}
		index.Put(entry.Function, append(positions, i))
	}

	return &Printer{
		config: config,
		index:  index,
	}
}

// Match returns watched frames in backtrace order. Each watch entry matches
// at most once, and never after a later entry has matched.
func (p *Printer) Match(backtrace *Backtrace) []Match {
	var matches []Match

	level := 0
	for _, frame := range backtrace.Frames() {
		found, ok := p.index.Get(frame.Name)
		if !ok {
			continue
		}

		for _, i := range found.([]int) {
			if i < level {
				continue
			}

			entry := p.config.WatchList[i]
			value, present := frame.Argument(entry.Argument)
			matches = append(matches, Match{
				Frame: frame,
				Entry: entry,
				Value: value,
				Found: present,
			})
			level = i + 1
			break
		}
	}

	return matches
}

// Line renders a match as "<id> <name> => <value>".
func (p *Printer) Line(match Match) string {
	value := match.Entry.Placeholder()
	if match.Found {
		value = match.Value
		if p.config.PrettyPrint {
			value = PrettyValue(value)
		}
	}

	id, arrow := match.Frame.ID, "=>"
	if p.Color {
		id = colorID.Sprint(id)
		arrow = colorArrow.Sprint(arrow)
	}

	return id + " " + match.Frame.Name + " " + arrow + " " + value
}

func (p *Printer) Print(backtrace *Backtrace, writer io.Writer) error {
	bufWriter := bufio.NewWriter(writer)
	for _, match := range p.Match(backtrace) {
		if _, err := bufWriter.WriteString(p.Line(match) + "\n"); err != nil {
			return err
		}
	}
	return bufWriter.Flush()
}

var (
	colorID    = newColor(color.Bold, color.FgHiGreen)
	colorArrow = newColor(color.Faint)
)

func newColor(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	c.EnableColor()
	return c
}
