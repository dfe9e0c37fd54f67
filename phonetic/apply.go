package phonetic

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/chapterize/model"
)

// markupSpan matches the tags and entity references of SSML text. Lexicon
// matches never start or end inside one.
var markupSpan = regexp.MustCompile(`<[^<>]*>|&#?[A-Za-z0-9]+;`)

// ApplyLexicons wraps every whole-word, case-insensitive occurrence of each
// lexicon grapheme in text with phoneme markup.
//
// text is SSML text as produced by EscapeText or Wrap: markup characters in
// it are escaped. Lexicons are applied in slice order and entries in table
// order. Text wrapped by an earlier entry is not protected from later ones,
// so a later lexicon may wrap text that is already wrapped. Matching is done
// on the NFC form of text and graphemes, but the returned text outside the
// added markup is byte-for-byte the input, casing and normalization form
// included.
func ApplyLexicons(text string, lexicons []model.Lexicon) string {
	if text == "" || len(lexicons) == 0 {
		return text
	}

	for _, lex := range lexicons {
		for _, entry := range lex.Entries {
			text = applyEntry(text, entry)
		}
	}
	return text
}

// applyEntry substitutes one lexicon entry throughout text.
func applyEntry(text string, entry model.LexiconEntry) string {
	grapheme := EscapeText(norm.NFC.String(strings.TrimSpace(entry.Grapheme)))
	if grapheme == "" || entry.Phoneme == "" {
		return text
	}

	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(grapheme))
	if err != nil {
		return text
	}

	view := newNFCView(text)
	matches := re.FindAllStringIndex(view.text, -1)
	if len(matches) == 0 {
		return text
	}
	markup := markupSpan.FindAllStringIndex(view.text, -1)

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !isWholeWord(view.text, m[0], m[1]) || splitsMarkup(markup, m[0]) || splitsMarkup(markup, m[1]) {
			continue
		}
		start, ok := view.original(m[0])
		if !ok {
			continue
		}
		end, ok := view.original(m[1])
		if !ok {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(wrapMarkup(text[start:end], entry.Phoneme, entry.Alphabet))
		last = end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// nfcView is the NFC form of a string together with the byte offsets where
// each character begins in both forms.
type nfcView struct {
	text     string
	viewPos  []int
	inputPos []int
}

func newNFCView(s string) nfcView {
	if norm.NFC.IsNormalString(s) {
		return nfcView{text: s}
	}

	var b strings.Builder
	b.Grow(len(s))
	var v nfcView
	for i := 0; i < len(s); {
		n := norm.NFC.NextBoundaryInString(s[i:], true)
		if n <= 0 {
			n = len(s) - i
		}
		v.viewPos = append(v.viewPos, b.Len())
		v.inputPos = append(v.inputPos, i)
		b.WriteString(norm.NFC.String(s[i : i+n]))
		i += n
	}
	v.viewPos = append(v.viewPos, b.Len())
	v.inputPos = append(v.inputPos, len(s))
	v.text = b.String()
	return v
}

// original maps an offset in the view back to the input. Offsets that fall
// inside a character have no counterpart.
func (v nfcView) original(offset int) (int, bool) {
	if v.viewPos == nil {
		return offset, true
	}
	i := sort.SearchInts(v.viewPos, offset)
	if i < len(v.viewPos) && v.viewPos[i] == offset {
		return v.inputPos[i], true
	}
	return 0, false
}

// splitsMarkup reports whether offset falls strictly inside one of the
// markup spans.
func splitsMarkup(spans [][]int, offset int) bool {
	for _, s := range spans {
		if s[0] >= offset {
			return false
		}
		if offset < s[1] {
			return true
		}
	}
	return false
}

// isWholeWord reports whether text[start:end] is not glued to a word
// character on either side.
func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
