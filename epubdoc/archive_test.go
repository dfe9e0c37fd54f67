package epubdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		href    string
		want    string
	}{
		{"relative", "OEBPS", "text/ch1.xhtml", "OEBPS/text/ch1.xhtml"},
		{"root package", "", "ch1.xhtml", "ch1.xhtml"},
		{"fragment dropped", "OEBPS", "ch1.xhtml#sec2", "OEBPS/ch1.xhtml"},
		{"parent directory", "OEBPS/toc", "../text/ch1.xhtml", "OEBPS/text/ch1.xhtml"},
		{"percent encoded", "OEBPS", "Cap%C3%ADtulo%201.xhtml", "OEBPS/Capítulo 1.xhtml"},
		{"backslashes", "OEBPS", `text\ch1.xhtml`, "OEBPS/text/ch1.xhtml"},
		{"absolute", "OEBPS", "/images/cover.jpg", "images/cover.jpg"},
		{"fragment only", "OEBPS", "#top", ""},
		{"empty", "OEBPS", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolvePath(tt.baseDir, tt.href))
		})
	}
}

func TestDirOf(t *testing.T) {
	assert.Equal(t, "OEBPS", dirOf("OEBPS/content.opf"))
	assert.Equal(t, "", dirOf("content.opf"))
	assert.Equal(t, "a/b", dirOf(`a\b\toc.ncx`))
}

func TestIsMarkup(t *testing.T) {
	assert.True(t, isMarkup("application/xhtml+xml"))
	assert.True(t, isMarkup("text/html"))
	assert.True(t, isMarkup("text/html; charset=utf-8"))
	assert.False(t, isMarkup("image/svg+xml"))
	assert.False(t, isMarkup("application/x-dtbncx+xml"))
	assert.False(t, isMarkup(""))
}

func TestArchive(t *testing.T) {
	data := newTestEPUB().add("OEBPS/Text/ch1.xhtml", "<html/>").bytes(t)

	a, err := openArchive(data)
	require.NoError(t, err)

	assert.Equal(t, epubMimetype, a.mimetype())
	assert.True(t, a.has("OEBPS/Text/ch1.xhtml"))
	assert.True(t, a.has("/OEBPS/Text/../Text/ch1.xhtml"))
	assert.False(t, a.has("OEBPS/Text/ch2.xhtml"))

	content, err := a.readFile(`OEBPS\Text\ch1.xhtml`)
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(content))

	_, err = a.readFile("OEBPS/missing.xhtml")
	assert.ErrorIs(t, err, ErrMissingContent)
}

func TestNavigationMap(t *testing.T) {
	nav := make(NavigationMap)
	nav.add("OEBPS/ch1.xhtml", "  Chapter\n  One ")
	nav.add("OEBPS/ch1.xhtml", "Chapter One, part two")
	nav.add("OEBPS/ch2.xhtml", "   ")
	nav.add("", "Orphan")

	assert.Equal(t, "Chapter One", nav.Label("OEBPS/ch1.xhtml"))
	assert.Equal(t, "Chapter One", nav.Label("OEBPS/./ch1.xhtml"))
	assert.Equal(t, "", nav.Label("OEBPS/ch2.xhtml"))
	assert.Len(t, nav, 1)
}

func TestParseLexicon_Defaults(t *testing.T) {
	data := newTestEPUB().add("lex.pls", `<lexicon version="1.0">
  <lexeme><grapheme>Cádiz</grapheme><phoneme>ˈkaðiθ</phoneme></lexeme>
  <lexeme><grapheme>Nadie</grapheme></lexeme>
  <lexeme><grapheme> </grapheme><phoneme>x</phoneme></lexeme>
</lexicon>`).bytes(t)

	a, err := openArchive(data)
	require.NoError(t, err)

	lex, err := parseLexicon(a, "names", "lex.pls")
	require.NoError(t, err)

	assert.Equal(t, "names", lex.ID)
	assert.Equal(t, "es", lex.Language)
	require.Len(t, lex.Entries, 1)
	assert.Equal(t, "Cádiz", lex.Entries[0].Grapheme)
	assert.Equal(t, "ipa", lex.Entries[0].Alphabet)
}
