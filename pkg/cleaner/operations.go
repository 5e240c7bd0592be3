// pkg/cleaner/operations.go
package cleaner

import (
	"regexp"
	"strings"
)

// Pure string operations used by TextCleaner. Kept free of state so they
// can be tested in isolation.

var encodingReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "--",
	"…", "...",
	" ", " ",
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"\t", " ",
)

var (
	urlPattern   = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

	multiSpace       = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	punctNoSpace     = regexp.MustCompile(`([.,!?;:])([^\s.,!?;:'")\]])`)
)

// fixEncodingArtifacts maps smart quotes, dashes, ellipses and stray
// control whitespace left by upstream exports to their ASCII forms.
func fixEncodingArtifacts(text string) string {
	return encodingReplacer.Replace(text)
}

func removeURLs(text string) string {
	return urlPattern.ReplaceAllString(text, " ")
}

func removeEmails(text string) string {
	return emailPattern.ReplaceAllString(text, " ")
}

// normalizeWhitespace collapses runs of whitespace to single spaces,
// repairs spacing around sentence punctuation, and trims the result.
func normalizeWhitespace(text string) string {
	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = punctNoSpace.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}
