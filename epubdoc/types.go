// Package epubdoc parses EPUB manuscripts into narrative chapters.
//
// [Parse] is the entry point. It reads the container, the OPF package
// document, the table of contents and any pronunciation lexicons, then
// extracts, titles and classifies every spine document:
//
//	doc, err := epubdoc.Parse(data, "novel.epub", epubdoc.WithLogger(logger))
//	switch {
//	case errors.Is(err, epubdoc.ErrInvalidContainer):
//	    // not an EPUB
//	case errors.Is(err, epubdoc.ErrInvalidPackage):
//	    // broken package document
//	case errors.Is(err, epubdoc.ErrEmptyDocument):
//	    // nothing but front matter
//	}
//
// Each call works on its own archive and state, so documents may be parsed
// concurrently.
package epubdoc

import "github.com/tsawler/chapterize/model"

// Package represents the parsed OPF document.
type Package struct {
	Metadata model.Metadata
	Manifest map[string]ManifestItem // keyed by ID
	Spine    []SpineItem
	Version  string // "2.0" or "3.0"

	// LexiconItems lists pronunciation lexicons in manifest order.
	LexiconItems []ManifestItem
	// NCXPath is the EPUB 2 navigation control file; the last one declared
	// wins.
	NCXPath string
	// NavDocPath is the EPUB 3 navigation document.
	NavDocPath string
}

// ManifestItem represents a file in the EPUB.
type ManifestItem struct {
	ID         string
	Href       string // archive path, resolved against the OPF directory
	MediaType  string
	Properties []string // "nav", "cover-image", etc.
}

// SpineItem represents a content document in reading order.
type SpineItem struct {
	IDRef  string
	Linear bool // true if part of main reading order
}

// HasProperty reports whether the item declares the given property.
func (m ManifestItem) HasProperty(prop string) bool {
	for _, p := range m.Properties {
		if p == prop {
			return true
		}
	}
	return false
}
