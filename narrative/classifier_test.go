package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// story returns narrative-looking text of n characters.
func story(n int) string {
	return strings.Repeat("a", n)
}

func TestClassify_FrontMatterTitles(t *testing.T) {
	titles := []string{
		"Table of Contents",
		"ÍNDICE",
		"Copyright",
		"Derechos de autor",
		"Title Page",
		"Portada",
		"Acknowledgments",
		"Agradecimientos",
		"Dedication",
		"Dedicatoria",
		"Colophon",
		"Author's Note",
		"Nota del autor",
		"Bibliography",
		"About the Author",
		"Sobre la autora",
		"Also by Jane Doe",
		"Otros libros de Ana Pérez",
		"Synopsis",
		"  sinopsis:  ",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			v := Classify(title, story(5000))
			assert.True(t, v.Exclude)
			assert.Equal(t, ReasonFrontMatterTitle, v.Reason)
		})
	}
}

func TestClassify_TitleMatchIsWholeString(t *testing.T) {
	titles := []string{
		"The Dedication of Brother Tom",
		"Copyright Wars",
		"Chapter 1",
		"Contents of the Chest",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			assert.True(t, IsNarrative(title, story(5000)))
		})
	}
}

func TestClassify_TooShort(t *testing.T) {
	v := Classify("Chapter 1", story(150))
	assert.True(t, v.Exclude)
	assert.Equal(t, ReasonTooShort, v.Reason)

	assert.False(t, IsNarrative("Chapter 1", story(MinNarrativeLength-1)))
	assert.True(t, IsNarrative("Chapter 1", story(MinNarrativeLength)))
}

func TestClassify_TooShortCountsCharactersNotBytes(t *testing.T) {
	// 150 two-byte characters are still 150 characters.
	assert.False(t, IsNarrative("Capítulo", strings.Repeat("ñ", 150)))
	assert.True(t, IsNarrative("Capítulo", strings.Repeat("ñ", 200)))
}

func TestClassify_LegalNotice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"copyright symbol", "© 2024 Jane Doe. " + story(300), true},
		{"all rights reserved", "All Rights Reserved. " + story(300), true},
		{"spanish rights", "Todos los derechos reservados. " + story(300), true},
		{"isbn", "ISBN 978-84-000-0000-0 " + story(300), true},
		{"legal deposit", "Depósito legal: M-1234-2024 " + story(300), true},
		{"edition notice", "Primera edición: marzo de 2024 " + story(300), true},
		{"printed in", "Printed in Spain " + story(300), true},
		{"long chapter quoting a notice", "© 2024 " + story(2000), false},
		{"marker after scan window", story(600) + " all rights reserved", false},
		{"plain story", story(800), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify("Chapter 3", tt.text)
			assert.Equal(t, tt.want, v.Exclude)
			if tt.want {
				assert.Equal(t, ReasonLegalNotice, v.Reason)
			}
		})
	}
}

func TestClassify_CopyrightPageScenario(t *testing.T) {
	text := "Copyright © 2024, all rights reserved, ISBN 000-0"
	v := Classify("Chapter 2", text)
	assert.True(t, v.Exclude)
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "none", ReasonNone.String())
	assert.Equal(t, "front-matter-title", ReasonFrontMatterTitle.String())
	assert.Equal(t, "too-short", ReasonTooShort.String())
	assert.Equal(t, "legal-notice", ReasonLegalNotice.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
