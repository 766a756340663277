package vscode

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"gni.dev/bpmagick/internal/dbg"
)

// Decode parses the JSON list stored under the breakpoint key.
func Decode(store string, data []byte) ([]dbg.Breakpoint, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ErrMalformed{Store: store, Index: -1, Reason: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, &ErrMalformed{Store: store, Index: -1, Reason: "not a list"}
	}

	var (
		bps []dbg.Breakpoint
		err error
	)
	idx := 0
	root.ForEach(func(_, entry gjson.Result) bool {
		var bp dbg.Breakpoint
		bp, err = decodeEntry(entry)
		if err != nil {
			m := err.(*ErrMalformed)
			m.Store = store
			m.Index = idx
			return false
		}
		bps = append(bps, bp)
		idx++
		return true
	})
	if err != nil {
		return nil, err
	}
	return bps, nil
}

func decodeEntry(entry gjson.Result) (dbg.Breakpoint, error) {
	var bp dbg.Breakpoint
	if !entry.IsObject() {
		return bp, &ErrMalformed{Reason: "is not an object"}
	}

	path := entry.Get("uri.path")
	if path.Type != gjson.String {
		return bp, missing("uri.path", path)
	}
	bp.File = NormalizePath(path.String())

	line := entry.Get("lineNumber")
	n, ok := toInt(line)
	if line.Type != gjson.Number || !ok || n < 1 {
		return bp, missing("lineNumber", line)
	}
	bp.Line = n

	enabled := entry.Get("enabled")
	if !enabled.IsBool() {
		return bp, missing("enabled", enabled)
	}
	bp.Enabled = enabled.Bool()

	if hit := entry.Get("hitCondition"); hit.Exists() {
		n, ok := toInt(hit)
		if !ok || n < 0 {
			return bp, &ErrMalformed{Field: "hitCondition", Reason: "is not a non-negative integer: " + hit.Raw}
		}
		bp.HitCount = &n
	}

	if cond := entry.Get("condition"); cond.Exists() {
		if cond.Type != gjson.String {
			return bp, &ErrMalformed{Field: "condition", Reason: "is not a string"}
		}
		s := cond.String()
		bp.Condition = &s
	}
	return bp, nil
}

func missing(field string, r gjson.Result) error {
	if !r.Exists() {
		return &ErrMalformed{Field: field, Reason: "is missing"}
	}
	return &ErrMalformed{Field: field, Reason: "has unexpected value " + r.Raw}
}

// toInt accepts integral JSON numbers and numeric strings.
func toInt(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		if r.Num != math.Trunc(r.Num) || r.Num > math.MaxInt32 || r.Num < math.MinInt32 {
			return 0, false
		}
		return int(r.Num), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.Str))
		return n, err == nil
	}
	return 0, false
}

// NormalizePath strips the separator that URI encoding puts in front of a
// drive letter ("/C:/src/a.c" becomes "C:/src/a.c").
func NormalizePath(p string) string {
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' && isLetter(p[1]) {
		return p[1:]
	}
	return p
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
