package convert

import (
	"fmt"
	"strings"

	"gni.dev/bpmagick/internal/dbg"
	"gni.dev/bpmagick/internal/dbg/trace32"
)

// FormatList renders breakpoints in the file and line based command set.
func FormatList(bps []dbg.Breakpoint) string {
	var sb strings.Builder
	sb.WriteString("# Breakpoints\n")
	for _, bp := range bps {
		file := trace32.Quote(bp.File)
		state := "Enabled"
		if !bp.Enabled {
			state = "Disabled"
		}

		switch {
		case bp.HitCount != nil && bp.Condition != nil:
			fmt.Fprintf(&sb, "SetBreakpointHitCountCondition %s %d %s %d %s\n", file, bp.Line, state, *bp.HitCount, trace32.Quote(*bp.Condition))
		case bp.HitCount != nil:
			fmt.Fprintf(&sb, "SetBreakpointHitCount %s %d %s %d\n", file, bp.Line, state, *bp.HitCount)
		case bp.Condition != nil:
			fmt.Fprintf(&sb, "SetBreakpointCondition %s %d %s %s\n", file, bp.Line, state, trace32.Quote(*bp.Condition))
		default:
			fmt.Fprintf(&sb, "SetBreakpoint %s %d %s\n", file, bp.Line, state)
		}
	}
	return sb.String()
}
