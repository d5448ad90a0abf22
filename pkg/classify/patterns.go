package classify

import (
	"regexp"
	"strings"
)

// space is \s widened to every Unicode space separator plus the vertical tab,
// line and paragraph separators and the byte order mark. RE2's \s is ASCII
// only.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// compile builds a pattern with \s meaning space. [\s\S] is rewritten first
// so it keeps matching any character.
func compile(expr string) *regexp.Regexp {
	expr = strings.ReplaceAll(expr, `[\s\S]`, `(?s:.)`)
	return regexp.MustCompile(strings.ReplaceAll(expr, `\s`, space))
}

// Order matters in every table below: the first match wins.

var codeIndicators = []*regexp.Regexp{
	compile(`(?m)^(const|let|var|function|class|import|export)\s`),
	compile(`(?m)^(def|class|import)\s`),
	compile(`(?m)^(public|private|protected)\s`),
	compile(`(?m)[{};]\s*$`),
	compile(`(?m)^\s*<[^>]+>`),
	compile(`(?m)^\s*@\w+`),
	compile(`=>`),
	compile(`(?m)^[ \t]*if\s*\(`),
	compile(`(?m)^[ \t]*for\s*\(`),
}

var markdownIndicators = []*regexp.Regexp{
	compile(`(?m)^#{1,6}\s`),
	compile(`(?m)^[*+-]\s`),
	compile(`(?m)^\d+\.\s`),
	compile(`(?m)^\[.*\]`),
	compile(`(?m)^\|.*\|`),
	compile(`(?m)^>`),
	compile(`\*\*.*\*\*`),
	compile(`_.*_`),
	compile("`.*`"),
}

type language struct {
	tag string
	re  *regexp.Regexp
}

// Ecosystem keyword forms come before the generic brace and bracket forms.
var languages = []language{
	{tag: "javascript", re: compile(`(?m)^(const|let|var|function|class|import|export)\s|=>`)},
	{tag: "typescript", re: compile(`(?m)^(interface|type|enum)\s|:\s*(string|number|boolean)`)},
	{tag: "python", re: compile(`(?m)^(def|class|import)\s|:\s*$`)},
	{tag: "html", re: compile(`(?m)^\s*<[^>]+>`)},
	{tag: "css", re: compile(`(?m)^\s*\{[\s\S]*\}\s*$`)},
	{tag: "sql", re: compile(`(?im)^(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER)\s`)},
	{tag: "json", re: compile(`(?m)^\s*\{[\s\S]*\}\s*$|\[[\s\S]*\]\s*$`)},
	{tag: "markdown", re: compile(`(?m)^#\s|^\*\s|^\d\.\s|^\[.*\]|^\|.*\|`)},
}
