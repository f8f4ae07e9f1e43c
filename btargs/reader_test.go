package btargs

import (
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonBacktrace = `[New LWP 4242]
Core was generated by 'python app.py'.
#0  0x00007f0000000001 in stale_frame () before the thread header
Thread 1 (Thread 0x7f3a2b4c5700 (LWP 4242)):
#0  0x00007f3a2a1b0428 in raise (sig=6) at ../sysdeps/unix/sysv/linux/raise.c:54
        resultvar = 0
        pid = <optimized out>
#1  0x00007f3a2a1b202a in abort () at abort.c:89
No locals.
#2  import_submodule (buf=0x1 "mymodule", name=0x2 "x") at import.c:2700
        m = 0x0
        name = 0x3 "y"
#3  0x00000000004c9a0f in PyEval_EvalCodeEx (co=0x7f, globals=<optimized out>) at ceval.c:3265
        f = 0x7f3a28000b20
        retval = <optimized out>
No symbol table info available.
#4  0x0000000000400abc in main (argc=1, argv=0x7ffd) at main.c:20
        f = 0x99
`

func readBacktrace(t *testing.T, config Config, input string) (*Backtrace, *Collector) {
	t.Helper()

	collector := &Collector{}
	logger := &log.Logger{Handler: discard.New(), Level: log.DebugLevel}

	backtrace, err := NewReader(config, collector).WithLogger(logger).Read(strings.NewReader(input))
	require.NoError(t, err)

	return backtrace, collector
}

func TestReaderReadsThreadSection(t *testing.T) {
	backtrace, collector := readBacktrace(t, DefaultConfig(), pythonBacktrace)
	assert.Empty(t, collector.Errors)

	require.Equal(t, 4, backtrace.Len())

	ids := make([]string, 0, backtrace.Len())
	names := make([]string, 0, backtrace.Len())
	for _, frame := range backtrace.Frames() {
		ids = append(ids, frame.ID)
		names = append(names, frame.Name)
	}
	assert.Equal(t, []string{"#0", "#1", "#2", "#3"}, ids)
	assert.Equal(t, []string{"raise", "abort", "import_submodule", "PyEval_EvalCodeEx"}, names)

	raise := backtrace.Frame(0)
	assert.Equal(t, []string{"sig", "resultvar"}, raise.ArgumentNames())
	_, ok := raise.Argument("pid")
	assert.False(t, ok)

	assert.Empty(t, backtrace.Frame(1).ArgumentNames())

	imp := backtrace.Frame(2)
	assert.Equal(t, "import_submodule", imp.Name)
	assert.Equal(t, []string{"buf", "name", "m"}, imp.ArgumentNames())
	buf, _ := imp.Argument("buf")
	assert.Equal(t, `0x1 "mymodule"`, buf)
	// Binding lines win over inline arguments.
	name, _ := imp.Argument("name")
	assert.Equal(t, `0x3 "y"`, name)

	eval := backtrace.Frame(3)
	f, ok := eval.Argument("f")
	require.True(t, ok)
	assert.Equal(t, "0x7f3a28000b20", f)
	assert.Equal(t, []string{"co", "f"}, eval.ArgumentNames())

	for _, frame := range backtrace.Frames() {
		assert.NotEqual(t, "main", frame.Name)
	}
}

func TestReaderPlainDialect(t *testing.T) {
	backtrace, collector := readBacktrace(t, PlainConfig(), pythonBacktrace)
	assert.Empty(t, collector.Errors)

	imp := backtrace.Frame(2)
	assert.Equal(t, "import_submodule", imp.Name)
	assert.Equal(t, []string{"m", "name"}, imp.ArgumentNames())
	_, ok := imp.Argument("buf")
	assert.False(t, ok)
}

func TestReaderWithoutThreadHeader(t *testing.T) {
	backtrace, collector := readBacktrace(t, DefaultConfig(), "#0 foo (a=1)\n        b = 2\n")
	assert.Equal(t, 0, backtrace.Len())
	assert.Empty(t, collector.Errors)
}

func TestReaderStopsAtMarkers(t *testing.T) {
	for _, marker := range []string{
		"From                To                  Syms Read   Shared Object Library",
		"No symbol table info available.",
		"Thread 2 (Thread 0x7f3a2b4c5800 (LWP 4243)):",
	} {
		input := "Thread 1 (LWP 1):\n#0 first ()\n" + marker + "\n#1 second ()\n"
		backtrace, _ := readBacktrace(t, DefaultConfig(), input)
		require.Equal(t, 1, backtrace.Len(), marker)
		assert.Equal(t, "first", backtrace.Frame(0).Name)
	}
}

func TestReaderReportsAndSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"Thread 1 (LWP 1):",
		"        orphan = 1",
		"#0 good (a=1)",
		"        broken",
		"        b = 2",
		"#1",
		"        lost = 3",
		"#2 0x00007f at nowhere ()",
		"#3 partial (x=1, y=",
		"        z = <optimized out>",
		"",
		"#4 last",
		"        c = 4",
	}, "\n")

	backtrace, collector := readBacktrace(t, DefaultConfig(), input)

	require.Equal(t, 3, backtrace.Len())
	good, partial, last := backtrace.Frame(0), backtrace.Frame(1), backtrace.Frame(2)

	assert.Equal(t, "good", good.Name)
	assert.Equal(t, []string{"a", "b"}, good.ArgumentNames())

	assert.Equal(t, "partial", partial.Name)
	assert.Equal(t, []string{"x"}, partial.ArgumentNames())

	assert.Equal(t, "last", last.Name)
	assert.Equal(t, []string{"c"}, last.ArgumentNames())

	require.Len(t, collector.Errors, 4)
	assert.ErrorIs(t, collector.Errors[0], ErrMalformedBinding)
	assert.Equal(t, 4, collector.Errors[0].Line)
	assert.Equal(t, "        broken", collector.Errors[0].Text)
	assert.ErrorIs(t, collector.Errors[1], ErrMalformedFrameID)
	assert.ErrorIs(t, collector.Errors[2], ErrMissingInKeyword)
	assert.ErrorIs(t, collector.Errors[3], ErrMissingArgumentValue)
}

func TestReaderLastBindingWins(t *testing.T) {
	input := "Thread 1:\n#0 f (a=1)\n        a = 2\n        a = 3\n"

	backtrace, _ := readBacktrace(t, DefaultConfig(), input)
	value, ok := backtrace.Frame(0).Argument("a")
	require.True(t, ok)
	assert.Equal(t, "3", value)
}

func TestReaderKeepsDuplicateFrameIDs(t *testing.T) {
	input := "Thread 1:\n#0 f ()\n#0 g ()\n"

	backtrace, _ := readBacktrace(t, DefaultConfig(), input)
	require.Equal(t, 2, backtrace.Len())
	assert.Equal(t, "g", backtrace.Frame(1).Name)
}

func TestReaderLogsFramesAndTruncatedValues(t *testing.T) {
	input := "Thread 1:\n" +
		`#0 load (s=0x10 "abcdefgh"...(truncated), n=2)` + "\n" +
		"        i = 7\n" +
		"#1 main ()\n"

	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.DebugLevel}

	_, err := NewReader(DefaultConfig(), &Collector{}).WithLogger(logger).Read(strings.NewReader(input))
	require.NoError(t, err)

	var truncated, done []log.Fields
	for _, entry := range handler.Entries {
		switch entry.Message {
		case "value truncated by debugger":
			truncated = append(truncated, entry.Fields)
		case "frame done":
			done = append(done, entry.Fields)
		}
	}

	require.Len(t, truncated, 1)
	assert.Equal(t, "s", truncated[0]["argument"])
	assert.Equal(t, 2, truncated[0]["line"])

	require.Len(t, done, 2)
	assert.Equal(t, "#0", done[0]["id"])
	assert.Equal(t, "s,n,i", done[0]["arguments"])
	assert.Equal(t, "#1", done[1]["id"])
	assert.Equal(t, "", done[1]["arguments"])
}
