package sanitize

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// HTML escapes the characters that would let user input inject markup when
// the comment is rendered. It always returns a string; empty input stays empty.
func HTML(input string) string {
	return htmlReplacer.Replace(input)
}
