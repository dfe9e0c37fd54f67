// Package chapterize provides a fluent API for turning EPUB manuscripts into
// narrated chapters.
//
// Basic usage:
//
//	doc, err := chapterize.Open("book.epub").Document()
//	if err != nil {
//	    // handle error
//	}
//	for _, ch := range doc.Chapters {
//	    fmt.Println(ch.SequenceNumber, ch.Title, ch.EstimatedDurationSeconds)
//	}
//
// With options:
//
//	chapters, err := chapterize.Open("book.epub").
//	    WithLogger(logger).
//	    ApplyLexicons().
//	    Chapters()
//
// For lower-level control, the epubdoc package is also available.
package chapterize

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/chapterize/epubdoc"
	"github.com/tsawler/chapterize/model"
)

// Open returns an Extractor for the EPUB file at filename. The file is read
// when a terminal operation such as Document() is called.
//
// Example:
//
//	doc, err := chapterize.Open("book.epub").Document()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		name:     filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor for an EPUB already held in memory. name
// identifies the book in log output.
//
// Example:
//
//	data, _ := os.ReadFile("book.epub")
//	text, err := chapterize.FromBytes(data, "book.epub").Text()
func FromBytes(data []byte, name string) *Extractor {
	return &Extractor{
		data:    data,
		name:    name,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := chapterize.Must(chapterize.Open("book.epub").Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Extractor provides a fluent interface for parsing one EPUB.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	name     string

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a copy of options.
// The source bytes are shared; they are never modified.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		name:     e.name,
		options:  e.options.clone(),
	}
}

// WithLogger sends parse events to logger.
//
// Example:
//
//	doc, err := chapterize.Open("book.epub").WithLogger(zap.NewExample()).Document()
func (e *Extractor) WithLogger(logger *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ApplyLexicons wraps every word listed in the book's pronunciation lexicons
// with phoneme markup in each chapter's annotated text.
//
// Example:
//
//	chapters, err := chapterize.Open("book.epub").ApplyLexicons().Chapters()
func (e *Extractor) ApplyLexicons() *Extractor {
	newExt := e.clone()
	newExt.options.applyLexicons = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document parses the book and returns the full document.
func (e *Extractor) Document() (*model.Document, error) {
	data, err := e.load()
	if err != nil {
		return nil, err
	}
	return epubdoc.Parse(data, e.name, e.options.parseOptions()...)
}

// Chapters parses the book and returns its chapters in reading order.
func (e *Extractor) Chapters() ([]model.Chapter, error) {
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}
	return doc.Chapters, nil
}

// Text parses the book and returns the plain text of every chapter,
// separated by blank lines.
func (e *Extractor) Text() (string, error) {
	doc, err := e.Document()
	if err != nil {
		return "", err
	}
	return doc.PlainText(), nil
}

// load returns the EPUB bytes, reading the file if needed.
func (e *Extractor) load() ([]byte, error) {
	if e.data != nil {
		return e.data, nil
	}
	if e.filename == "" {
		return nil, errors.New("no filename specified")
	}

	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}
	return data, nil
}
