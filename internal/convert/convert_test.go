package convert

import (
	"bytes"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"gni.dev/bpmagick/internal/dbg"
	"gni.dev/bpmagick/internal/dbg/test"
	"gni.dev/bpmagick/internal/dbg/trace32"
	"gni.dev/bpmagick/internal/log"
)

func TestMain(m *testing.M) {
	os.Exit(test.Run(m))
}

func writeStore(t *testing.T, dir, value string) {
	path := filepath.Join(test.TempDir(), dir, "state.vscdb")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO ItemTable VALUES ('debug.breakpoint', ?)", value)
	require.NoError(t, err)
}

func parseArgs(t *testing.T, args ...string) *Args {
	f := flag.NewFlagSet("t32", flag.ContinueOnError)
	a := CreateEmitArgs(f)
	require.NoError(t, f.Parse(args))
	return a
}

func TestT32(t *testing.T) {
	src := test.TempFile("t32/src/add.c", "int add(int a, int b) {\n\tint c = a + b;\n\treturn c;\n}\n")
	py := test.TempFile("t32/src/gen.py", "x = 1\n")
	writeStore(t, "t32/ws/1", fmt.Sprintf(`[
		{"enabled":true,"uri":{"path":%q},"lineNumber":3},
		{"enabled":true,"uri":{"path":%q},"lineNumber":1},
		{"enabled":false,"uri":{"path":%q},"lineNumber":1,"hitCondition":"5","condition":"a>0"}
	]`, src, py, src))

	a := parseArgs(t, "-store", filepath.Join(test.TempDir(), "t32", "ws", "*", "state.vscdb"))
	var out, errOut bytes.Buffer
	require.NoError(t, T32(&out, a, log.New(&errOut)))

	assert.Equal(t, "Break.RESet\nBreak.Set add\\2\nBreak.Set add /DISable /COUNT 5 /CONDition \"a>0\"\n", out.String())
	assert.Contains(t, errOut.String(), "gen.py")
}

func TestT32NotFound(t *testing.T) {
	src := test.TempFile("nf/src/data.c", "int table[] = {\n\t1,\n};\n")
	writeStore(t, "nf/ws/1", fmt.Sprintf(`[{"enabled":true,"uri":{"path":%q},"lineNumber":2}]`, src))

	a := parseArgs(t, "-store", filepath.Join(test.TempDir(), "nf", "ws", "*", "state.vscdb"))
	var out bytes.Buffer
	err := T32(&out, a, log.Discard)

	var nf *trace32.ErrFunctionNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 2, nf.Breakpoint.Line)
	assert.Empty(t, out.String())

	a = parseArgs(t, "-keep-going", "-store", filepath.Join(test.TempDir(), "nf", "ws", "*", "state.vscdb"))
	out.Reset()
	require.NoError(t, T32(&out, a, log.Discard))
	assert.Equal(t, "Break.RESet\n", out.String())
}

func TestT32NoStores(t *testing.T) {
	a := parseArgs(t, "-store", filepath.Join(test.TempDir(), "empty", "*", "state.vscdb"))
	var out, errOut bytes.Buffer
	require.NoError(t, T32(&out, a, log.New(&errOut)))
	assert.Equal(t, "Break.RESet\n", out.String())
	assert.Contains(t, errOut.String(), "no state stores found")
}

func TestExtensionList(t *testing.T) {
	a := parseArgs(t)
	assert.Equal(t, trace32.DefaultExtensions, a.ExtensionList())

	a = parseArgs(t, "-ext", "c, .S,,h")
	assert.Equal(t, []string{".c", ".S", ".h"}, a.ExtensionList())
}

func TestFormatList(t *testing.T) {
	five, cond := 5, `s == "a"`
	bps := []dbg.Breakpoint{
		{File: "/src/a.c", Line: 1, Enabled: true},
		{File: "/src/a.c", Line: 2, Enabled: false, HitCount: &five},
		{File: "/src/a.c", Line: 3, Enabled: true, Condition: &cond},
		{File: `/src/"q".c`, Line: 4, Enabled: true, HitCount: &five, Condition: &cond},
	}

	want := "# Breakpoints\n" +
		"SetBreakpoint \"/src/a.c\" 1 Enabled\n" +
		"SetBreakpointHitCount \"/src/a.c\" 2 Disabled 5\n" +
		"SetBreakpointCondition \"/src/a.c\" 3 Enabled \"s == \\\"a\\\"\"\n" +
		"SetBreakpointHitCountCondition \"/src/\\\"q\\\".c\" 4 Enabled 5 \"s == \\\"a\\\"\"\n"
	assert.Equal(t, want, FormatList(bps))
}

func TestList(t *testing.T) {
	writeStore(t, "list/ws/1", `[{"enabled":true,"uri":{"path":"/src/tool.py"},"lineNumber":7}]`)

	f := flag.NewFlagSet("list", flag.ContinueOnError)
	a := CreateArgs(f)
	require.NoError(t, f.Parse([]string{"-store", filepath.Join(test.TempDir(), "list", "ws", "*", "state.vscdb")}))

	var out bytes.Buffer
	require.NoError(t, List(&out, a, log.Discard))
	assert.Equal(t, "# Breakpoints\nSetBreakpoint \"/src/tool.py\" 7 Enabled\n", out.String())
}

func TestExitCode(t *testing.T) {
	var errOut bytes.Buffer
	l := log.New(&errOut)

	assert.Equal(t, 0, exitCode(l, nil))
	assert.Empty(t, errOut.String())

	err := &trace32.ErrFunctionNotFound{Breakpoint: dbg.Breakpoint{File: "/src/a.c", Line: 4}}
	assert.Equal(t, 1, exitCode(l, err))
	assert.Contains(t, errOut.String(), "ERROR no enclosing function found for breakpoint at /src/a.c:4")
}
