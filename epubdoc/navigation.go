package epubdoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/chapterize/htmldoc"
)

// NavigationMap maps a content document's archive path to its table of
// contents label.
type NavigationMap map[string]string

// Label returns the label recorded for an archive path.
func (m NavigationMap) Label(archivePath string) string {
	return m[normalizePath(archivePath)]
}

// add records label for archivePath unless a label is already present.
// Tables of contents often point several entries (sub-sections) at the same
// file; the first one is the file's own heading.
func (m NavigationMap) add(archivePath, label string) {
	label = strings.Join(strings.Fields(label), " ")
	if archivePath == "" || label == "" {
		return
	}
	if _, ok := m[archivePath]; ok {
		return
	}
	m[archivePath] = label
}

// ncxDocument represents an EPUB 2 NCX navigation document.
type ncxDocument struct {
	Title  string    `xml:"docTitle>text"`
	NavMap ncxNavMap `xml:"navMap"`
}

type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	ID        string        `xml:"id,attr"`
	PlayOrder string        `xml:"playOrder,attr"`
	Label     string        `xml:"navLabel>text"`
	Content   ncxContent    `xml:"content"`
	Children  []ncxNavPoint `xml:"navPoint"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// parseNCX parses an EPUB 2 NCX document into a navigation map.
func parseNCX(a *archive, ncxPath string) (NavigationMap, error) {
	data, err := a.readFile(ncxPath)
	if err != nil {
		return nil, err
	}

	var ncx ncxDocument
	if err := decodeXML(data, &ncx); err != nil {
		return nil, err
	}

	nav := make(NavigationMap)
	addNavPoints(nav, dirOf(ncxPath), ncx.NavMap.NavPoints)
	return nav, nil
}

// addNavPoints visits navPoints depth-first, parents before children.
func addNavPoints(nav NavigationMap, baseDir string, points []ncxNavPoint) {
	for _, p := range points {
		nav.add(resolvePath(baseDir, p.Content.Src), p.Label)
		addNavPoints(nav, baseDir, p.Children)
	}
}

// parseNavDocument parses an EPUB 3 nav document (XHTML with nav element).
func parseNavDocument(a *archive, navPath string) (NavigationMap, error) {
	data, err := a.readFile(navPath)
	if err != nil {
		return nil, err
	}

	doc, err := htmldoc.ParseContent(data)
	if err != nil {
		return nil, err
	}

	nav := make(NavigationMap)
	root := findTOCNav(doc)
	if root == nil {
		return nav, nil
	}

	baseDir := dirOf(navPath)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attr(n, "href"); href != "" {
				nav.add(resolvePath(baseDir, href), nodeText(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return nav, nil
}

// findTOCNav finds the <nav> element with epub:type="toc", falling back to
// the first <nav>.
func findTOCNav(doc *html.Node) *html.Node {
	var first, toc *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if toc != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "nav" {
			if first == nil {
				first = n
			}
			for _, at := range n.Attr {
				if (at.Key == "epub:type" || at.Key == "type") && strings.Contains(at.Val, "toc") {
					toc = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	if toc != nil {
		return toc
	}
	return first
}

func attr(n *html.Node, key string) string {
	for _, at := range n.Attr {
		if at.Key == key {
			return at.Val
		}
	}
	return ""
}

// nodeText extracts all text content from an HTML node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(nodeText(c))
	}
	return text.String()
}
