package db

import (
	"strconv"
	"strings"
)

// MatchAll matches every document in an index.
const MatchAll = "*"

// And joins filter parts with implicit AND semantics, skipping empties.
func And(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return MatchAll
	}
	return strings.Join(out, " ")
}

// TagFilter builds an exact TAG match: @field:{value}.
func TagFilter(field, value string) string {
	return "@" + field + ":{" + tagEscaper.Replace(value) + "}"
}

// TagUnionFilter builds a TAG union match: @field:{a|b|c}.
func TagUnionFilter(field string, values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return "@" + field + ":{" + strings.Join(escaped, "|") + "}"
}

// NumericRange builds an inclusive NUMERIC range: @field:[min max].
func NumericRange(field string, min, max float64) string {
	return "@" + field + ":[" + formatNum(min) + " " + formatNum(max) + "]"
}

// NumericAbove builds an exclusive lower bound: @field:[(min +inf].
// Used for ascending keyset pagination.
func NumericAbove(field string, min float64) string {
	return "@" + field + ":[(" + formatNum(min) + " +inf]"
}

// NumericBelow builds an exclusive upper bound: @field:[-inf (max].
// Used for descending keyset pagination.
func NumericBelow(field string, max float64) string {
	return "@" + field + ":[-inf (" + formatNum(max) + "]"
}

// TextSubstring builds an infix wildcard TEXT match: @field:(*term*).
// Requires DIALECT 2.
func TextSubstring(field, term string) string {
	return "@" + field + ":(*" + queryEscaper.Replace(term) + "*)"
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
