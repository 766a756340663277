package trace32

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gni.dev/bpmagick/internal/dbg"
	"gni.dev/bpmagick/internal/log"
)

const (
	cmdClearAll = "Break.RESet"
	cmdSet      = "Break.Set"
)

// DefaultExtensions lists the source files the resolver understands.
var DefaultExtensions = []string{".c", ".h", ".cc", ".cpp", ".cxx", ".hh", ".hpp"}

// ErrFunctionNotFound reports a breakpoint with no function header above it,
// or one that sits outside the body of the nearest header.
type ErrFunctionNotFound struct {
	Breakpoint dbg.Breakpoint
}

func (e *ErrFunctionNotFound) Error() string {
	return fmt.Sprintf("no enclosing function found for breakpoint at %s", e.Breakpoint)
}

// ErrUnacceptedFile reports a breakpoint in a file whose extension is not
// in the allow-list. It never aborts a run.
type ErrUnacceptedFile struct {
	File string
}

func (e *ErrUnacceptedFile) Error() string {
	return fmt.Sprintf("file type not accepted: %s", e.File)
}

// Accepted reports whether file has one of the extensions in exts.
func Accepted(file string, exts []string) bool {
	ext := filepath.Ext(file)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Emitter turns breakpoints into debugger commands. The zero value uses the
// default extensions, reads files from disk and discards log messages.
type Emitter struct {
	// Extensions is the allow-list of source file extensions. nil means
	// DefaultExtensions.
	Extensions []string
	// KeepGoing skips breakpoints without an enclosing function instead of
	// failing the whole run.
	KeepGoing bool
	Log       log.Logger
	ReadFile  func(name string) ([]byte, error)

	// Skipped holds one *ErrUnacceptedFile or *ErrFunctionNotFound per
	// breakpoint left out by the last Emit.
	Skipped []error
}

// NewEmitter returns an Emitter logging to l.
func NewEmitter(l log.Logger) *Emitter {
	return &Emitter{
		Extensions: DefaultExtensions,
		Log:        l,
		ReadFile:   os.ReadFile,
	}
}

// Emit writes the clear-all command followed by one set command per
// breakpoint. Nothing is written to w if any breakpoint fails.
func (e *Emitter) Emit(w io.Writer, bps []dbg.Breakpoint) error {
	var out bytes.Buffer
	out.WriteString(cmdClearAll + "\n")
	e.Skipped = nil

	for _, bp := range bps {
		if !Accepted(bp.File, e.extensions()) {
			err := &ErrUnacceptedFile{File: bp.File}
			e.logger().Infof("skipping %s: %v", bp, err)
			e.Skipped = append(e.Skipped, err)
			continue
		}

		lines, err := e.readLines(bp.File)
		if err != nil {
			return err
		}

		res := Resolve(lines, bp)
		if !res.Found {
			err := &ErrFunctionNotFound{Breakpoint: bp}
			if !e.KeepGoing {
				return err
			}
			e.logger().Warnf("skipping: %v", err)
			e.Skipped = append(e.Skipped, err)
			continue
		}
		out.WriteString(Command(res))
		out.WriteByte('\n')
	}

	_, err := w.Write(out.Bytes())
	return err
}

func (e *Emitter) extensions() []string {
	if e.Extensions == nil {
		return DefaultExtensions
	}
	return e.Extensions
}

func (e *Emitter) logger() log.Logger {
	if e.Log == nil {
		return log.Discard
	}
	return e.Log
}

func (e *Emitter) readLines(name string) ([]string, error) {
	read := e.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(name)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

// Command renders the set command for a resolved breakpoint. Qualifiers
// always come in the order offset, disable, count, condition.
func Command(res Resolution) string {
	bp := res.Breakpoint
	var sb strings.Builder
	sb.WriteString(cmdSet)
	sb.WriteByte(' ')
	sb.WriteString(res.Match.Name)
	sb.WriteString(FormatOffset(res.Match.Offset(bp.Line)))
	if !bp.Enabled {
		sb.WriteString(" /DISable")
	}
	if bp.HitCount != nil {
		sb.WriteString(" /COUNT ")
		sb.WriteString(strconv.Itoa(*bp.HitCount))
	}
	if bp.Condition != nil {
		sb.WriteString(" /CONDition ")
		sb.WriteString(Quote(*bp.Condition))
	}
	return sb.String()
}

// Quote wraps s in double quotes, escaping the quotes inside it.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
