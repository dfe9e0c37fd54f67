package phonetic

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/chapterize/model"
)

// textEscaper escapes the characters that are markup in SSML text content.
// Quotes are left alone; they only need escaping inside attribute values.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText returns s with the SSML markup characters &, < and > replaced
// by their entity references.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// Wrap returns text enclosed in an SSML phoneme element. Text and attribute
// values are escaped. An empty alphabet defaults to model.DefaultAlphabet.
func Wrap(text, phoneme, alphabet string) string {
	return wrapMarkup(EscapeText(text), phoneme, alphabet)
}

// wrapMarkup is Wrap for content that is already SSML text.
func wrapMarkup(content, phoneme, alphabet string) string {
	if alphabet == "" {
		alphabet = model.DefaultAlphabet
	}

	var b strings.Builder
	b.Grow(len(content) + len(phoneme) + len(alphabet) + 40)
	b.WriteString(`<phoneme alphabet="`)
	b.WriteString(html.EscapeString(alphabet))
	b.WriteString(`" ph="`)
	b.WriteString(html.EscapeString(phoneme))
	b.WriteString(`">`)
	b.WriteString(content)
	b.WriteString(`</phoneme>`)
	return b.String()
}
