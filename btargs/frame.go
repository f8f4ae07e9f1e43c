package btargs

import "github.com/emirpasic/gods/maps/linkedhashmap"

// Frame is one entry of a backtrace. Arguments maps argument and local
// names to their raw value text.
type Frame struct {
	ID        string
	Name      string
	Arguments *linkedhashmap.Map
}

func NewFrame(id string, name string) Frame {
	return Frame{
		ID:        id,
		Name:      name,
		Arguments: linkedhashmap.New(),
	}
}

// SetArgument stores value under name, replacing an earlier value.
func (f *Frame) SetArgument(name string, value string) {
	f.Arguments.Put(name, value)
}

func (f Frame) Argument(name string) (string, bool) {
	value, ok := f.Arguments.Get(name)
	if !ok {
		return "", false
	}
	return value.(string), true
}

// ArgumentNames lists names in the order they were first seen.
func (f Frame) ArgumentNames() []string {
	keys := f.Arguments.Keys()
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.(string)
	}
	return names
}

// Backtrace holds the frames of one thread, innermost first.
type Backtrace struct {
	frames []Frame
}

func (b *Backtrace) Len() int {
	return len(b.frames)
}

func (b *Backtrace) Frame(i int) Frame {
	return b.frames[i]
}

func (b *Backtrace) Frames() []Frame {
	frames := make([]Frame, len(b.frames))
	copy(frames, b.frames)
	return frames
}

// append adds a frame and returns its index.
func (b *Backtrace) append(frame Frame) int {
	b.frames = append(b.frames, frame)
	return len(b.frames) - 1
}
