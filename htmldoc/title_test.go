package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inferString(t *testing.T, markup, navLabel string, seq int) Title {
	t.Helper()

	doc, err := ParseContent([]byte(markup))
	require.NoError(t, err)
	ex := Extract(Body(doc))
	return InferTitle(doc, navLabel, seq, ex.Plain)
}

func TestInferTitle_Cascade(t *testing.T) {
	tests := []struct {
		name       string
		markup     string
		navLabel   string
		wantText   string
		wantSource string
	}{
		{
			name:       "navigation label beats h1",
			markup:     `<html><body><h1>Heading One</h1><p>Text</p></body></html>`,
			navLabel:   "From the Table of Contents",
			wantText:   "From the Table of Contents",
			wantSource: SourceNavigation,
		},
		{
			name:       "h1",
			markup:     `<html><body><h2>Second</h2><h1>  The   First </h1></body></html>`,
			wantText:   "The First",
			wantSource: SourceH1,
		},
		{
			name:       "empty h1 falls through to h2",
			markup:     `<html><body><h1> </h1><h2>Second</h2></body></html>`,
			wantText:   "Second",
			wantSource: SourceH2,
		},
		{
			name:       "empty first h1 is not skipped for a later one",
			markup:     `<html><body><h1> </h1><h2>Dos</h2><h1>Later</h1></body></html>`,
			wantText:   "Dos",
			wantSource: SourceH2,
		},
		{
			name:       "first h2 wins over later h2",
			markup:     `<html><body><h2><img src="x.png"/></h2><p>Text</p><h2>Later</h2><h3>Tres</h3></body></html>`,
			wantText:   "Tres",
			wantSource: SourceH3,
		},
		{
			name:       "keyword class before h3",
			markup:     `<html><body><h3>Minor</h3><p class="Chapter-Title">Capítulo Uno</p></body></html>`,
			wantText:   "Capítulo Uno",
			wantSource: SourceKeyword,
		},
		{
			name:       "keyword id",
			markup:     `<html><body><div id="titulo">El comienzo</div></body></html>`,
			wantText:   "El comienzo",
			wantSource: SourceKeyword,
		},
		{
			name:       "long keyword container is skipped",
			markup:     `<html><body><div class="chapter"><p>` + strings.Repeat("word ", 60) + `</p></div><h3>Third Level</h3></body></html>`,
			wantText:   "Third Level",
			wantSource: SourceH3,
		},
		{
			name:       "head title",
			markup:     `<html><head><title>Short Title</title></head><body><p>Plain text only.</p></body></html>`,
			wantText:   "Short Title",
			wantSource: SourceHeadTitle,
		},
		{
			name:       "long head title is ignored",
			markup:     `<html><head><title>` + strings.Repeat("Long ", 30) + `</title></head><body><p><strong>Bold Lead</strong> then text.</p></body></html>`,
			wantText:   "Bold Lead",
			wantSource: SourceBold,
		},
		{
			name:       "chapter pattern in text",
			markup:     `<html><body><p>Capítulo 3: La huida</p><p>Corrieron toda la noche.</p></body></html>`,
			wantText:   "Capítulo 3: La huida",
			wantSource: SourcePattern,
		},
		{
			name:       "roman numeral part",
			markup:     `<html><body><p>PART IV</p><p>The war ended.</p></body></html>`,
			wantText:   "PART IV",
			wantSource: SourcePattern,
		},
		{
			name:       "prologue",
			markup:     `<html><body><p>Prólogo</p><p>Antes de todo.</p></body></html>`,
			wantText:   "Prólogo",
			wantSource: SourcePattern,
		},
		{
			name:       "fallback",
			markup:     `<html><body><p>Nothing resembling a heading here.</p></body></html>`,
			wantText:   "Chapter 7",
			wantSource: SourceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inferString(t, tt.markup, tt.navLabel, 7)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantText, got.String())
		})
	}
}

func TestInferTitle_PatternDoesNotMatchWords(t *testing.T) {
	got := inferString(t, `<html><body><p>Chapter Did not start yet.</p></body></html>`, "", 2)
	assert.Equal(t, "Chapter 2", got.Text)
}

func TestInferTitle_Truncates(t *testing.T) {
	got := inferString(t, `<html><body><p>x</p></body></html>`, strings.Repeat("a", 200), 1)

	assert.Equal(t, MaxTitleLength, len([]rune(got.Text)))
	assert.True(t, strings.HasSuffix(got.Text, "..."))
	assert.Equal(t, strings.Repeat("a", 147)+"...", got.Text)
}

func TestInferTitle_ExactlyMaxLengthIsKept(t *testing.T) {
	label := strings.Repeat("b", MaxTitleLength)
	got := inferString(t, `<html><body></body></html>`, label, 1)
	assert.Equal(t, label, got.Text)
}

func TestInferTitle_NilRoot(t *testing.T) {
	assert.Equal(t, "Chapter 4", InferTitle(nil, "", 4, "").Text)
	assert.Equal(t, "Label", InferTitle(nil, "Label", 4, "").Text)
	assert.Equal(t, "Chapter 12", InferTitle(nil, "", 4, "Chapter 12\n\nText").Text)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "Chapter 1", FallbackTitle(1))
	assert.Equal(t, "Chapter 42", FallbackTitle(42))
}
