package epubdoc

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/tsawler/chapterize/model"
)

// Package-document errors. Every one of them matches ErrInvalidPackage.
var (
	ErrInvalidPackage = errors.New("epub: invalid package document")
	ErrNoOPF          = fmt.Errorf("%w: missing package document (OPF)", ErrInvalidPackage)
	ErrEmptySpine     = fmt.Errorf("%w: no content in spine", ErrInvalidPackage)
)

// Media types with special meaning in the manifest.
const (
	mediaTypeNCX     = "application/x-dtbncx+xml"
	mediaTypeLexicon = "application/pls+xml"
	mediaTypeXHTML   = "application/xhtml+xml"
	mediaTypeHTML    = "text/html"
)

// opfPackage represents the OPF package document.
type opfPackage struct {
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	Title    []dcElement `xml:"title"`
	Creator  []dcElement `xml:"creator"`
	Language []dcElement `xml:"language"`
}

type dcElement struct {
	ID      string `xml:"id,attr"`
	Content string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"` // NCX ID for EPUB 2
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// parseOPF parses the OPF file and returns a Package struct.
func parseOPF(a *archive, opfPath string) (*Package, error) {
	if !a.has(opfPath) {
		return nil, fmt.Errorf("%w: %s", ErrNoOPF, opfPath)
	}

	data, err := a.readFile(opfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidPackage, opfPath, err)
	}

	var opf opfPackage
	if err := decodeXML(data, &opf); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidPackage, opfPath, err)
	}

	baseDir := dirOf(opfPath)
	pkg := &Package{
		Version:  opf.Version,
		Metadata: convertMetadata(&opf.Metadata),
		Manifest: make(map[string]ManifestItem, len(opf.Manifest.Items)),
		Spine:    convertSpine(&opf.Spine),
	}
	pkg.addManifestItems(opf.Manifest.Items, baseDir)

	// EPUB 2 spines may name the NCX without a recognizable media type.
	if pkg.NCXPath == "" && opf.Spine.Toc != "" {
		if mi, ok := pkg.Manifest[strings.TrimSpace(opf.Spine.Toc)]; ok {
			pkg.NCXPath = mi.Href
		}
	}

	if len(pkg.Spine) == 0 {
		return nil, ErrEmptySpine
	}

	return pkg, nil
}

func convertMetadata(m *opfMetadata) model.Metadata {
	return model.Metadata{
		Title:    firstOr(m.Title, model.DefaultTitle),
		Author:   firstOr(m.Creator, model.DefaultAuthor),
		Language: firstOr(m.Language, model.DefaultLanguage),
	}
}

// firstOr returns the first non-empty element content, or def.
func firstOr(elems []dcElement, def string) string {
	for _, e := range elems {
		if s := strings.Join(strings.Fields(e.Content), " "); s != "" {
			return s
		}
	}
	return def
}

// addManifestItems records every item that has both an id and an href and
// picks out lexicons and navigation files.
func (p *Package) addManifestItems(items []opfItem, baseDir string) {
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		href := resolvePath(baseDir, item.Href)
		if id == "" || href == "" {
			continue
		}

		mi := ManifestItem{
			ID:        id,
			Href:      href,
			MediaType: strings.ToLower(strings.TrimSpace(item.MediaType)),
		}
		if item.Properties != "" {
			mi.Properties = strings.Fields(item.Properties)
		}
		p.Manifest[id] = mi

		switch {
		case mi.MediaType == mediaTypeLexicon:
			p.LexiconItems = append(p.LexiconItems, mi)
		case mi.MediaType == mediaTypeNCX || strings.EqualFold(path.Ext(href), ".ncx"):
			p.NCXPath = href
		case mi.HasProperty("nav") && p.NavDocPath == "":
			p.NavDocPath = href
		}
	}
}

func convertSpine(s *opfSpine) []SpineItem {
	spine := make([]SpineItem, 0, len(s.ItemRefs))

	for _, ref := range s.ItemRefs {
		idref := strings.TrimSpace(ref.IDRef)
		if idref == "" {
			continue
		}
		spine = append(spine, SpineItem{
			IDRef:  idref,
			Linear: ref.Linear != "no", // Default is true
		})
	}

	return spine
}

// isMarkup reports whether a media type is an XHTML or HTML content document.
func isMarkup(mediaType string) bool {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	switch strings.TrimSpace(mediaType) {
	case mediaTypeXHTML, mediaTypeHTML:
		return true
	}
	return false
}
