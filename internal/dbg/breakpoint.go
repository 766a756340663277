package dbg

import "fmt"

// Breakpoint is a source breakpoint as recorded by the editor.
type Breakpoint struct {
	File    string
	Line    int // 1-based
	Enabled bool

	// Optional trigger conditions. nil means not set.
	HitCount  *int
	Condition *string
}

func (bp Breakpoint) String() string {
	return fmt.Sprintf("%s:%d", bp.File, bp.Line)
}
