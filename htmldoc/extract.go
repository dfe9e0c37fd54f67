package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/chapterize/model"
	"github.com/tsawler/chapterize/phonetic"
)

const paragraphBreak = "\n\n"

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
)

// Extraction is the linearized text of one content document.
type Extraction struct {
	// Plain is the text as a reader sees it.
	Plain string
	// Annotated is Plain as SSML text: markup characters are escaped and
	// inline pronunciations are kept as phoneme elements.
	Annotated string
	// Annotations lists the inline pronunciations in document order.
	Annotations []model.Annotation
}

// IsEmpty reports whether the document contributed no text.
func (e Extraction) IsEmpty() bool {
	return e.Plain == ""
}

// fragment is the partial result for one subtree.
type fragment struct {
	plain       string
	annotated   string
	annotations []model.Annotation
}

// Extract walks the tree rooted at n (normally the body element) and returns
// its plain and annotated text.
func Extract(n *html.Node) Extraction {
	f := extractNode(n)
	return Extraction{
		Plain:       normalizeText(f.plain),
		Annotated:   normalizeText(f.annotated),
		Annotations: f.annotations,
	}
}

// extractNode returns the text contributed by n and its descendants.
func extractNode(n *html.Node) fragment {
	switch n.Type {
	case html.TextNode:
		return fragment{plain: n.Data, annotated: phonetic.EscapeText(n.Data)}
	case html.DocumentNode:
		return extractChildren(n, false)
	case html.ElementNode:
		return extractElement(n)
	}
	return fragment{}
}

func extractElement(n *html.Node) fragment {
	if isSkippedElement(n.Data) {
		return fragment{}
	}

	if ph, ok := attrValue(n, "ssml:ph"); ok && strings.TrimSpace(ph) != "" {
		alphabet, _ := attrValue(n, "ssml:alphabet")
		if alphabet = strings.TrimSpace(alphabet); alphabet == "" {
			alphabet = model.DefaultAlphabet
		}

		// Inline pronunciations are taken as a unit; their children are not
		// walked.
		text := textContent(n)
		annotation := model.Annotation{
			OriginalText: collapseSpace(text),
			Phoneme:      ph,
			Alphabet:     alphabet,
		}
		return fragment{
			plain:       text,
			annotated:   phonetic.Wrap(text, ph, alphabet),
			annotations: []model.Annotation{annotation},
		}
	}

	if n.Data == "br" {
		return fragment{plain: "\n", annotated: "\n"}
	}

	return extractChildren(n, isBlockElement(n.Data))
}

// extractChildren concatenates the fragments of n's children, prefixed by a
// paragraph break when n is a block element.
func extractChildren(n *html.Node, block bool) fragment {
	var plain, annotated strings.Builder
	var annotations []model.Annotation

	if block {
		plain.WriteString(paragraphBreak)
		annotated.WriteString(paragraphBreak)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f := extractNode(c)
		appendText(&plain, f.plain)
		appendText(&annotated, f.annotated)
		annotations = append(annotations, f.annotations...)
	}

	return fragment{
		plain:       plain.String(),
		annotated:   annotated.String(),
		annotations: annotations,
	}
}

// appendText writes s to b, dropping a leading paragraph break when b already
// ends with one.
func appendText(b *strings.Builder, s string) {
	if strings.HasPrefix(s, paragraphBreak) && strings.HasSuffix(b.String(), paragraphBreak) {
		s = s[len(paragraphBreak):]
	}
	b.WriteString(s)
}

// normalizeText limits blank lines to one and collapses spaces and tabs
// before trimming. Spaces next to a newline are kept.
func normalizeText(s string) string {
	s = excessNewlines.ReplaceAllString(s, paragraphBreak)
	s = horizontalSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// isSkippedElement reports whether an element never contributes text.
func isSkippedElement(tagName string) bool {
	switch tagName {
	case "script", "style", "head", "nav":
		return true
	}
	return false
}

// isBlockElement reports whether an element starts a new paragraph.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "blockquote":
		return true
	}
	return false
}
