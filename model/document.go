package model

import "unicode/utf8"

// Metadata defaults used when the package descriptor omits a field.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown Author"
	DefaultLanguage = "es"
)

// CharsPerSecond is the narration rate used for duration estimates.
const CharsPerSecond = 12.5

// Document is the result of parsing one manuscript container.
type Document struct {
	Title                  string    `json:"title"`
	Author                 string    `json:"author"`
	Language               string    `json:"language"`
	Chapters               []Chapter `json:"chapters"`
	TotalCharacters        int       `json:"totalCharacters"`
	TotalEstimatedDuration int       `json:"totalEstimatedDuration"`
	HasAnnotations         bool      `json:"hasAnnotations"`
	Lexicons               []Lexicon `json:"lexicons,omitempty"`
}

// Metadata contains the book-level fields taken from the package descriptor.
type Metadata struct {
	Title    string
	Author   string
	Language string
}

// Chapter is one narrative unit of a document.
type Chapter struct {
	SequenceNumber           int          `json:"sequenceNumber"`
	Title                    string       `json:"title"`
	PlainText                string       `json:"plainText"`
	AnnotatedText            string       `json:"annotatedText"`
	CharacterCount           int          `json:"characterCount"`
	EstimatedDurationSeconds int          `json:"estimatedDurationSeconds"`
	Annotations              []Annotation `json:"annotations,omitempty"`

	// SourcePath is the archive path of the content document.
	SourcePath string `json:"sourcePath,omitempty"`
}

// NewChapter builds a Chapter and derives its character count and duration
// from plain.
func NewChapter(seq int, title, plain, annotated string, annotations []Annotation) Chapter {
	count := utf8.RuneCountInString(plain)
	return Chapter{
		SequenceNumber:           seq,
		Title:                    title,
		PlainText:                plain,
		AnnotatedText:            annotated,
		CharacterCount:           count,
		EstimatedDurationSeconds: EstimateDuration(count),
		Annotations:              annotations,
	}
}

// EstimateDuration returns ceil(chars / CharsPerSecond) in whole seconds.
func EstimateDuration(chars int) int {
	if chars <= 0 {
		return 0
	}
	// chars / 12.5 == 2*chars / 25
	return (2*chars + 24) / 25
}

// NewDocument assembles a Document and computes its aggregate totals.
func NewDocument(meta Metadata, chapters []Chapter, lexicons []Lexicon) *Document {
	doc := &Document{
		Title:    meta.Title,
		Author:   meta.Author,
		Language: meta.Language,
		Chapters: chapters,
		Lexicons: lexicons,
	}

	for _, ch := range chapters {
		doc.TotalCharacters += ch.CharacterCount
		doc.TotalEstimatedDuration += ch.EstimatedDurationSeconds
		if len(ch.Annotations) > 0 {
			doc.HasAnnotations = true
		}
	}
	if len(lexicons) > 0 {
		doc.HasAnnotations = true
	}

	return doc
}

// ChapterCount returns the number of chapters.
func (d *Document) ChapterCount() int {
	return len(d.Chapters)
}

// PlainText joins the plain text of all chapters separated by blank lines.
func (d *Document) PlainText() string {
	n := 0
	for _, ch := range d.Chapters {
		n += len(ch.PlainText) + 2
	}
	buf := make([]byte, 0, n)
	for i, ch := range d.Chapters {
		if i > 0 {
			buf = append(buf, "\n\n"...)
		}
		buf = append(buf, ch.PlainText...)
	}
	return string(buf)
}
