// Package narrative decides whether an extracted content unit is story text
// or front and back matter such as copyright pages, dedications and indexes.
package narrative

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Classification thresholds, in characters. Text shorter than
// MinNarrativeLength is never narrative. Legal markers are searched for in the
// first LegalScanLength characters and only exclude text shorter than
// MaxLegalPageLength.
const (
	MinNarrativeLength = 200
	LegalScanLength    = 500
	MaxLegalPageLength = 1500
)

// Reason explains why a unit was excluded.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonFrontMatterTitle
	ReasonTooShort
	ReasonLegalNotice
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonFrontMatterTitle:
		return "front-matter-title"
	case ReasonTooShort:
		return "too-short"
	case ReasonLegalNotice:
		return "legal-notice"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of Classify.
type Verdict struct {
	Exclude bool
	Reason  Reason
}

// nonNarrativeTitles match whole section labels in English and Spanish.
var nonNarrativeTitles = []*regexp.Regexp{
	regexp.MustCompile(`^(?i:table of contents|contents|[ií]ndice|[ií]ndice general|contenido|contenidos|tabla de contenidos?|sumario)$`),
	regexp.MustCompile(`^(?i:copyright|copyright page|derechos de autor|legal notice|aviso legal|nota legal|cr[eé]ditos|credits)$`),
	regexp.MustCompile(`^(?i:title page|half title|cover|portada|portadilla|cubierta|p[aá]gina de t[ií]tulo)$`),
	regexp.MustCompile(`^(?i:acknowledge?ments?|agradecimientos?)$`),
	regexp.MustCompile(`^(?i:dedication|dedicatoria)$`),
	regexp.MustCompile(`^(?i:colophon|colof[oó]n)$`),
	regexp.MustCompile(`^(?i:(?:author|editor)(?:'|’)?s note|note from the (?:author|editor)|nota del (?:autor|editor)|nota de la (?:autora|editora))$`),
	regexp.MustCompile(`^(?i:bibliography|references|bibliograf[ií]a|referencias)$`),
	regexp.MustCompile(`^(?i:about the author|sobre el autor|sobre la autora|acerca del autor|acerca de la autora)$`),
	regexp.MustCompile(`^(?i:(?:other books|also) by\b.*|otros libros de\b.*|otras obras de\b.*|del mismo autor|de la misma autora)$`),
	regexp.MustCompile(`^(?i:synopsis|sinopsis)$`),
}

// legalMarkers identify copyright and imprint pages.
var legalMarkers = []*regexp.Regexp{
	regexp.MustCompile(`©\s*\d{4}`),
	regexp.MustCompile(`(?i)\(c\)\s*\d{4}`),
	regexp.MustCompile(`(?i)copyright\s*(?:©\s*)?\d{4}`),
	regexp.MustCompile(`(?i)all rights reserved`),
	regexp.MustCompile(`(?i)todos los derechos reservados`),
	regexp.MustCompile(`(?i)\bISBN\b`),
	regexp.MustCompile(`(?i)dep[oó]sito legal`),
	regexp.MustCompile(`(?i)printed in|impreso en`),
	regexp.MustCompile(`(?i)(?:first|second|third) edition|(?:primera|segunda|tercera) edici[oó]n`),
}

// Classify reports whether a unit with the given title and plain text should
// be left out of the chapter sequence. It has no side effects.
func Classify(title, text string) Verdict {
	if isNonNarrativeTitle(title) {
		return Verdict{Exclude: true, Reason: ReasonFrontMatterTitle}
	}

	length := utf8.RuneCountInString(text)
	if length < MinNarrativeLength {
		return Verdict{Exclude: true, Reason: ReasonTooShort}
	}

	if length < MaxLegalPageLength && hasLegalMarker(text) {
		return Verdict{Exclude: true, Reason: ReasonLegalNotice}
	}

	return Verdict{}
}

// IsNarrative reports whether the unit belongs in the chapter sequence.
func IsNarrative(title, text string) bool {
	return !Classify(title, text).Exclude
}

func isNonNarrativeTitle(title string) bool {
	title = strings.Join(strings.Fields(title), " ")
	title = strings.TrimRight(title, ".: ")
	if title == "" {
		return false
	}

	for _, re := range nonNarrativeTitles {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

func hasLegalMarker(text string) bool {
	if utf8.RuneCountInString(text) > LegalScanLength {
		text = string([]rune(text)[:LegalScanLength])
	}

	for _, re := range legalMarkers {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
