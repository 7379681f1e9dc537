package lang

import (
	"strings"

	"github.com/Yemiez/ysen/value"
)

// formatPlaceholders scans fmt for `{}`, `{{` and `}}`, grounded on
// original_source's core::format: `{}` consumes the next argument's plain
// string form (§6: "the string form of subsequent arguments"), `{{` and
// `}}` are escapes for a literal brace. Extra arguments beyond the
// placeholder count are silently ignored; a `{}` past the last argument
// renders as empty, matching FormatterArgs::pop's empty-string-on-empty
// behavior.
func formatPlaceholders(fmtStr string, args []value.Value) string {
	var out strings.Builder
	next := 0
	runes := []rune(fmtStr)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '{' && i+1 < len(runes) && runes[i+1] == '}' {
			if next < len(args) {
				out.WriteString(args[next].String())
				next++
			}
			i++
			continue
		}
		if c == '{' && i+1 < len(runes) && runes[i+1] == '{' {
			out.WriteByte('{')
			i++
			continue
		}
		if c == '}' && i+1 < len(runes) && runes[i+1] == '}' {
			out.WriteByte('}')
			i++
			continue
		}
		out.WriteRune(c)
	}
	return out.String()
}
