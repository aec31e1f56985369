package sentiment

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	return tagPattern.ReplaceAllString(string(output), " ")
}

// CleanText strips markdown, links and redundant whitespace before text is sent to a model.
// Returns "" when nothing but markup was supplied.
func CleanText(input string) string {
	plain := ConvertMarkdownToText(RemoveLinks(input))
	plain = strings.Join(strings.Fields(unescape(plain)), " ")
	return strings.TrimSpace(plain)
}

var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

func unescape(s string) string {
	return entities.Replace(s)
}
