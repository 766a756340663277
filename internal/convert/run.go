package convert

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"gni.dev/bpmagick/internal/dbg"
	"gni.dev/bpmagick/internal/dbg/trace32"
	"gni.dev/bpmagick/internal/log"
	"gni.dev/bpmagick/internal/vscode"
)

// RunT32 prints the breakpoints as debugger commands.
func RunT32(args []string) {
	f := flag.NewFlagSet("t32", flag.ExitOnError)
	a := CreateEmitArgs(f)
	if err := f.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := log.New(os.Stderr)
	if code := exitCode(l, T32(os.Stdout, a, l)); code != 0 {
		os.Exit(code)
	}
}

// RunList prints the breakpoints by file and line.
func RunList(args []string) {
	f := flag.NewFlagSet("list", flag.ExitOnError)
	a := CreateArgs(f)
	if err := f.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := log.New(os.Stderr)
	if code := exitCode(l, List(os.Stdout, a, l)); code != 0 {
		os.Exit(code)
	}
}

// exitCode logs a fatal err and returns the process exit status for it.
func exitCode(l log.Logger, err error) int {
	if err == nil {
		return 0
	}
	l.Errorf("%v", err)
	return 1
}

func T32(w io.Writer, a *Args, l log.Logger) error {
	bps, err := load(a, l)
	if err != nil {
		return err
	}
	e := trace32.NewEmitter(l)
	e.Extensions = a.ExtensionList()
	e.KeepGoing = a.KeepGoing
	return e.Emit(w, bps)
}

func List(w io.Writer, a *Args, l log.Logger) error {
	bps, err := load(a, l)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, FormatList(bps))
	return err
}

func load(a *Args, l log.Logger) ([]dbg.Breakpoint, error) {
	globs := []string(a.Stores)
	if len(globs) == 0 {
		var err error
		globs, err = vscode.StoreGlobs(runtime.GOOS, os.Getenv)
		if err != nil {
			return nil, err
		}
	}
	stores, err := vscode.FindStores(globs)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		l.Warnf("no state stores found in %v", globs)
	}
	return vscode.Load(stores)
}
