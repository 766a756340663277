package trace32

import (
	"regexp"
	"strconv"
	"strings"

	"gni.dev/bpmagick/internal/dbg"
)

// headerRe matches a C-like function header at the start of the buffer:
// type tokens or pointer markers, the function name, the argument list and
// the opening brace. Any of these may sit on separate lines.
var headerRe = regexp.MustCompile(
	`^[ \t]*(?:[A-Za-z_][\w:]*[\s*&]+)+` + // return type, qualifiers, '*'
		`([A-Za-z_~][\w:~]*)\s*` + // name
		`\((?:[^;{}()]|\([^;{}()]*\))*\)\s*` + // arguments
		`(?:[A-Za-z_]\w*\s*)*\{`) // trailing qualifiers, brace

var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "return": true, "sizeof": true,
	"catch": true, "goto": true,
}

// FunctionMatch is the function header found above a breakpoint.
type FunctionMatch struct {
	Name        string
	DefLine     int // 0-based index of the first header line
	HeaderLines int // lines spanned by the header, brace included
}

// Offset returns the distance in lines between the opening brace and the
// given 1-based line.
func (m FunctionMatch) Offset(line int) int {
	return (line - 1) - m.DefLine - (m.HeaderLines - 1)
}

// Resolution is the outcome of resolving one breakpoint. Match is only
// meaningful when Found is set.
type Resolution struct {
	Breakpoint dbg.Breakpoint
	Match      FunctionMatch
	Found      bool
}

// Resolve finds the function enclosing bp by growing a buffer upwards from
// the breakpoint line until it starts with a function header. The nearest
// header wins. The header is rejected when its body is already closed
// before the breakpoint line, so a breakpoint at global scope or on a
// prototype does not resolve.
//
// This is pattern matching, not parsing: nested functions, multi-line
// macros and unusual formatting can give wrong results.
func Resolve(lines []string, bp dbg.Breakpoint) Resolution {
	res := Resolution{Breakpoint: bp}
	if bp.Line < 1 || bp.Line > len(lines) {
		return res
	}

	for i := bp.Line - 1; i >= 0; i-- {
		buf := strings.Join(lines[i:bp.Line], "\n")
		loc := headerRe.FindStringSubmatchIndex(buf)
		if loc == nil {
			continue
		}
		name := buf[loc[2]:loc[3]]
		if controlKeywords[name] {
			continue
		}
		if closedBefore(buf[loc[1]:]) {
			return res
		}
		header := buf[:loc[1]]
		res.Match = FunctionMatch{
			Name:        name,
			DefLine:     i,
			HeaderLines: strings.Count(header, "\n") + 1,
		}
		res.Found = true
		return res
	}
	return res
}

// closedBefore reports whether the body starting right after the opening
// brace is closed before the last line of body. Braces inside string and
// char literals and inside comments are not counted.
func closedBefore(body string) bool {
	nl := strings.LastIndexByte(body, '\n')
	if nl < 0 {
		return false
	}
	body = body[:nl]

	depth := 1
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '"' || c == '\'':
			i = skipLiteral(body, i)
		case c == '/' && i+1 < len(body) && body[i+1] == '/':
			i = skipTo(body, i+2, "\n") - 1
		case c == '/' && i+1 < len(body) && body[i+1] == '*':
			i = skipTo(body, i+2, "*/") + 1
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// skipLiteral returns the index of the quote closing the literal opened at
// start. A literal never runs past the end of its line.
func skipLiteral(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i
		case '\n':
			return i
		}
	}
	return len(s)
}

// skipTo returns the index of the first character of sep at or after from,
// or len(s) when sep does not occur.
func skipTo(s string, from int, sep string) int {
	if from > len(s) {
		return len(s)
	}
	if n := strings.Index(s[from:], sep); n >= 0 {
		return from + n
	}
	return len(s)
}

// FormatOffset renders a function relative line. Zero means the function
// entry and renders empty.
func FormatOffset(n int) string {
	if n == 0 {
		return ""
	}
	return `\` + strconv.Itoa(n)
}
