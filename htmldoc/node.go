package htmldoc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// selfClosingTag matches an XHTML empty-element tag such as <title/> or
// <script src="a.js" />, attribute values included.
var selfClosingTag = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9:._-]*)((?:\s+[^\s"'<>/=]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'<>]+))?)*)\s*/>`)

// ParseContent parses one XHTML or HTML content document.
//
// Empty-element tags are honored the way an XML parser reads them, so a
// <title/> or <script/> does not swallow the rest of the document.
func ParseContent(content []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(expandSelfClosing(content)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// expandSelfClosing rewrites empty-element tags of non-void elements as an
// explicit start and end tag pair. Void elements are left as they are.
func expandSelfClosing(content []byte) []byte {
	matches := selfClosingTag.FindAllSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b bytes.Buffer
	b.Grow(len(content) + 16*len(matches))
	last := 0
	for _, m := range matches {
		name := content[m[2]:m[3]]
		if isVoidElement(strings.ToLower(string(name))) {
			continue
		}
		b.Write(content[last:m[0]])
		b.WriteByte('<')
		b.Write(name)
		b.Write(content[m[4]:m[5]])
		b.WriteString("></")
		b.Write(name)
		b.WriteByte('>')
		last = m[1]
	}
	if last == 0 {
		return content
	}
	b.Write(content[last:])
	return b.Bytes()
}

// isVoidElement reports whether an HTML element never has content.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// Body returns the body element of doc, or doc itself when there is none.
func Body(doc *html.Node) *html.Node {
	if body := findElement(doc, "body"); body != nil {
		return body
	}
	return doc
}

// findElement returns the first element named tagName in document order.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// findFirst returns the first element in document order for which match
// returns true. Subtrees of skipped elements are not searched.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode {
		if isSkippedElement(n.Data) {
			return nil
		}
		if match(n) {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findFirst(c, match); result != nil {
			return result
		}
	}
	return nil
}

// textContent concatenates every text node below n, verbatim.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	writeText(n, &b)
	return b.String()
}

func writeText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && isSkippedElement(n.Data) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, b)
	}
}

// attrValue returns the value of the attribute whose qualified name equals
// key, ignoring case.
func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}
		if strings.EqualFold(name, key) {
			return attr.Val, true
		}
	}
	return "", false
}

// collapseSpace replaces every whitespace run with a single space and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
