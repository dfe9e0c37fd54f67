package htmldoc

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Title length limits, in characters.
const (
	MaxTitleLength       = 150
	truncatedTitleLength = 147
	titleEllipsis        = "..."

	maxKeywordTitleLength = 200
	maxHeadTitleLength    = 100
	maxBoldTitleLength    = 100
	titlePatternScanChars = 500
)

// Title sources, in the order they are tried.
const (
	SourceNavigation = "navigation"
	SourceH1         = "h1"
	SourceH2         = "h2"
	SourceKeyword    = "keyword"
	SourceH3         = "h3"
	SourceHeadTitle  = "head-title"
	SourceBold       = "bold"
	SourcePattern    = "pattern"
	SourceFallback   = "fallback"
)

// titleKeywords are matched against class and id attributes.
var titleKeywords = []string{
	"chapter", "capitulo", "capítulo",
	"title", "titulo", "título",
	"heading", "cabecera", "encabezado",
}

// chapterPatterns recognize headings that survive only as body text.
var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*(?i:cap[ií]tulo|chapter)[ \t]+(?:\d+|[IVXLCDM]+\b|(?i:uno|dos|tres|cuatro|cinco|seis|siete|ocho|nueve|diez|one|two|three|four|five|six|seven|eight|nine|ten)\b)(?:[ \t]*[:.\-–—][ \t]*[^\n]{1,100})?`),
	regexp.MustCompile(`(?m)^[ \t]*(?i:parte|part|libro|book)[ \t]+(?:\d+|[IVXLCDM]+\b|(?i:uno|dos|tres|cuatro|cinco|one|two|three|four|five)\b)(?:[ \t]*[:.\-–—][ \t]*[^\n]{1,100})?`),
	regexp.MustCompile(`(?m)^[ \t]*(?i:pr[oó]logo|prologue|ep[ií]logo|epilogue|interludio|interlude)\b(?:[ \t]*[:.\-–—][ \t]*[^\n]{1,100})?`),
	regexp.MustCompile(`(?m)^[ \t]*(?:\d{1,3}|[IVXLCDM]{1,7})\.[ \t]+[^\n]{1,100}`),
}

// Title is an inferred chapter title and the strategy that produced it.
type Title struct {
	Text   string
	Source string
}

// String returns the title text.
func (t Title) String() string {
	return t.Text
}

// titleInput is what every strategy may look at.
type titleInput struct {
	root     *html.Node
	body     *html.Node
	navLabel string
	plain    string
}

type titleStrategy struct {
	source  string
	extract func(in titleInput) string
}

// titleStrategies is evaluated in order; the first non-empty result wins.
var titleStrategies = []titleStrategy{
	{SourceNavigation, func(in titleInput) string { return in.navLabel }},
	{SourceH1, firstHeading("h1")},
	{SourceH2, firstHeading("h2")},
	{SourceKeyword, keywordTitle},
	{SourceH3, firstHeading("h3")},
	{SourceHeadTitle, headTitle},
	{SourceBold, boldTitle},
	{SourcePattern, patternTitle},
}

// InferTitle picks a human readable title for a content document.
//
// navLabel is the table of contents label for the document, if any, and is
// always preferred. plain is the document's extracted plain text. When no
// strategy yields text the title is "Chapter {seq}".
func InferTitle(root *html.Node, navLabel string, seq int, plain string) Title {
	in := titleInput{
		root:     root,
		navLabel: navLabel,
		plain:    plain,
	}
	if root != nil {
		in.body = Body(root)
	}

	for _, s := range titleStrategies {
		if in.root == nil && s.source != SourceNavigation && s.source != SourcePattern {
			continue
		}
		if text := cleanTitle(s.extract(in)); text != "" {
			return Title{Text: text, Source: s.source}
		}
	}

	return Title{Text: FallbackTitle(seq), Source: SourceFallback}
}

// FallbackTitle is the title used when nothing better is found.
func FallbackTitle(seq int) string {
	return "Chapter " + strconv.Itoa(seq)
}

// cleanTitle collapses whitespace and caps the length.
func cleanTitle(s string) string {
	s = collapseSpace(s)
	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:truncatedTitleLength]) + titleEllipsis
}

// firstHeading returns the text of the first tag element. An empty first
// heading yields "" so the cascade moves on; later headings of the same level
// are not consulted.
func firstHeading(tag string) func(titleInput) string {
	return func(in titleInput) string {
		n := findFirst(in.body, func(n *html.Node) bool {
			return n.Data == tag
		})
		if n == nil {
			return ""
		}
		return textContent(n)
	}
}

func keywordTitle(in titleInput) string {
	n := findFirst(in.body, func(n *html.Node) bool {
		if n == in.body || !hasTitleKeyword(n) {
			return false
		}
		text := collapseSpace(textContent(n))
		return text != "" && utf8.RuneCountInString(text) < maxKeywordTitleLength
	})
	if n == nil {
		return ""
	}
	return textContent(n)
}

func hasTitleKeyword(n *html.Node) bool {
	class, _ := attrValue(n, "class")
	id, _ := attrValue(n, "id")
	if class == "" && id == "" {
		return false
	}

	haystack := strings.ToLower(class + " " + id)
	for _, kw := range titleKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func headTitle(in titleInput) string {
	n := findElement(in.root, "title")
	if n == nil {
		return ""
	}
	text := collapseSpace(textContent(n))
	if utf8.RuneCountInString(text) >= maxHeadTitleLength {
		return ""
	}
	return text
}

func boldTitle(in titleInput) string {
	n := findFirst(in.body, func(n *html.Node) bool {
		return (n.Data == "b" || n.Data == "strong") && collapseSpace(textContent(n)) != ""
	})
	if n == nil {
		return ""
	}
	text := collapseSpace(textContent(n))
	if utf8.RuneCountInString(text) >= maxBoldTitleLength {
		return ""
	}
	return text
}

func patternTitle(in titleInput) string {
	head := in.plain
	if utf8.RuneCountInString(head) > titlePatternScanChars {
		head = string([]rune(head)[:titlePatternScanChars])
	}

	for _, re := range chapterPatterns {
		if m := re.FindString(head); m != "" {
			if m = strings.TrimSpace(m); m != "" {
				return m
			}
		}
	}
	return ""
}
