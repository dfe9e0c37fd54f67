package phonetic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/chapterize/model"
)

func xerxesLexicon() model.Lexicon {
	return model.Lexicon{
		ID:       "names",
		Language: "en",
		Entries: []model.LexiconEntry{
			{Grapheme: "Xerxes", Phoneme: "zɛrksiːz", Alphabet: "ipa"},
		},
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t,
		`<phoneme alphabet="ipa" ph="zɛrksiːz">Xerxes</phoneme>`,
		Wrap("Xerxes", "zɛrksiːz", "ipa"))

	t.Run("default alphabet", func(t *testing.T) {
		assert.Equal(t, `<phoneme alphabet="ipa" ph="a">b</phoneme>`, Wrap("b", "a", ""))
	})

	t.Run("escapes attribute values", func(t *testing.T) {
		assert.Equal(t, `<phoneme alphabet="x-sampa" ph="&#34;a">b</phoneme>`, Wrap("b", `"a`, "x-sampa"))
	})

	t.Run("escapes text", func(t *testing.T) {
		assert.Equal(t, `<phoneme alphabet="ipa" ph="a">R&amp;D &lt;b&gt;</phoneme>`, Wrap("R&D <b>", "a", "ipa"))
	})
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain words", "plain words"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"a<b>c", "a&lt;b&gt;c"},
		{`"quoted" isn't escaped`, `"quoted" isn't escaped`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeText(tt.in), tt.in)
	}
}

func TestApplyLexicons_Xerxes(t *testing.T) {
	plain := "Xerxes arrived"
	annotated := ApplyLexicons(plain, []model.Lexicon{xerxesLexicon()})

	assert.Equal(t, "Xerxes arrived", plain)
	assert.Equal(t, `<phoneme alphabet="ipa" ph="zɛrksiːz">Xerxes</phoneme> arrived`, annotated)
}

func TestApplyLexicons_WholeWordCaseInsensitive(t *testing.T) {
	lex := []model.Lexicon{xerxesLexicon()}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lower case match keeps casing",
			in:   "xerxes slept",
			want: `<phoneme alphabet="ipa" ph="zɛrksiːz">xerxes</phoneme> slept`,
		},
		{
			name: "inside a longer word is ignored",
			in:   "Xerxesian armies",
			want: "Xerxesian armies",
		},
		{
			name: "punctuation is a boundary",
			in:   "said Xerxes.",
			want: `said <phoneme alphabet="ipa" ph="zɛrksiːz">Xerxes</phoneme>.`,
		},
		{
			name: "every occurrence",
			in:   "Xerxes, XERXES",
			want: `<phoneme alphabet="ipa" ph="zɛrksiːz">Xerxes</phoneme>, <phoneme alphabet="ipa" ph="zɛrksiːz">XERXES</phoneme>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyLexicons(tt.in, lex))
		})
	}
}

func TestApplyLexicons_AccentedBoundaries(t *testing.T) {
	lex := []model.Lexicon{{
		ID: "es",
		Entries: []model.LexiconEntry{
			{Grapheme: "Ñandú", Phoneme: "ɲanˈdu", Alphabet: "ipa"},
		},
	}}

	assert.Equal(t, `El <phoneme alphabet="ipa" ph="ɲanˈdu">ñandú</phoneme> corre`, ApplyLexicons("El ñandú corre", lex))
	assert.Equal(t, "Ñandúes", ApplyLexicons("Ñandúes", lex))
}

func TestApplyLexicons_LaterLexiconRewraps(t *testing.T) {
	first := model.Lexicon{ID: "a", Entries: []model.LexiconEntry{{Grapheme: "Troy", Phoneme: "trɔɪ", Alphabet: "ipa"}}}
	second := model.Lexicon{ID: "b", Entries: []model.LexiconEntry{{Grapheme: "Troy", Phoneme: "tʁwa", Alphabet: "ipa"}}}

	got := ApplyLexicons("Troy", []model.Lexicon{first, second})
	assert.Equal(t,
		`<phoneme alphabet="ipa" ph="trɔɪ"><phoneme alphabet="ipa" ph="tʁwa">Troy</phoneme></phoneme>`,
		got)
}

func TestApplyLexicons_NoLexicons(t *testing.T) {
	assert.Equal(t, "unchanged", ApplyLexicons("unchanged", nil))
	assert.Equal(t, "", ApplyLexicons("", []model.Lexicon{xerxesLexicon()}))
}

func TestApplyLexicons_SkipsIncompleteEntries(t *testing.T) {
	lex := []model.Lexicon{{Entries: []model.LexiconEntry{
		{Grapheme: "", Phoneme: "x"},
		{Grapheme: "word", Phoneme: ""},
	}}}
	assert.Equal(t, "a word here", ApplyLexicons("a word here", lex))
}

func TestApplyLexicons_KeepsNormalizationForm(t *testing.T) {
	lex := []model.Lexicon{
		xerxesLexicon(),
		{ID: "es", Entries: []model.LexiconEntry{{Grapheme: "Ñandú", Phoneme: "ɲanˈdu", Alphabet: "ipa"}}},
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "decomposed text outside matches is untouched",
			in:   "cafe\u0301 con Xerxes",
			want: "cafe\u0301 con " + `<phoneme alphabet="ipa" ph="zɛrksiːz">Xerxes</phoneme>`,
		},
		{
			name: "decomposed occurrence still matches",
			in:   "El N\u0303andu\u0301 corre",
			want: `El <phoneme alphabet="ipa" ph="ɲanˈdu">N` + "\u0303andu\u0301" + `</phoneme> corre`,
		},
		{
			name: "composed text is unchanged",
			in:   "El ñandú corre",
			want: `El <phoneme alphabet="ipa" ph="ɲanˈdu">ñandú</phoneme> corre`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyLexicons(tt.in, lex))
		})
	}
}

func TestApplyLexicons_EscapedText(t *testing.T) {
	entry := func(grapheme string) []model.Lexicon {
		return []model.Lexicon{{ID: "x", Entries: []model.LexiconEntry{{Grapheme: grapheme, Phoneme: "p", Alphabet: "ipa"}}}}
	}

	tests := []struct {
		name     string
		grapheme string
		in       string
		want     string
	}{
		{
			name:     "grapheme with markup characters",
			grapheme: "R&D",
			in:       "R&amp;D labs",
			want:     `<phoneme alphabet="ipa" ph="p">R&amp;D</phoneme> labs`,
		},
		{
			name:     "entity names are not words",
			grapheme: "amp",
			in:       "Tom &amp; Jerry",
			want:     "Tom &amp; Jerry",
		},
		{
			name:     "attribute values are not words",
			grapheme: "ipa",
			in:       Wrap("b", "a", "ipa"),
			want:     Wrap("b", "a", "ipa"),
		},
		{
			name:     "element names are not words",
			grapheme: "phoneme",
			in:       Wrap("b", "a", "ipa") + " phoneme",
			want:     Wrap("b", "a", "ipa") + ` <phoneme alphabet="ipa" ph="p">phoneme</phoneme>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyLexicons(tt.in, entry(tt.grapheme)))
		})
	}
}
