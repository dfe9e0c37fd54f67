package epubdoc

import (
	"encoding/xml"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/chapterize/model"
)

// plsLexicon represents a W3C Pronunciation Lexicon Specification document.
type plsLexicon struct {
	Alphabet string      `xml:"alphabet,attr"`
	Attrs    []xml.Attr  `xml:",any,attr"`
	Lexemes  []plsLexeme `xml:"lexeme"`
}

type plsLexeme struct {
	Graphemes []string     `xml:"grapheme"`
	Phonemes  []plsPhoneme `xml:"phoneme"`
}

type plsPhoneme struct {
	Alphabet string `xml:"alphabet,attr"`
	Value    string `xml:",chardata"`
}

// parseLexicon reads the lexicon stored at lexPath.
func parseLexicon(a *archive, id, lexPath string) (*model.Lexicon, error) {
	data, err := a.readFile(lexPath)
	if err != nil {
		return nil, err
	}

	var pls plsLexicon
	if err := decodeXML(data, &pls); err != nil {
		return nil, err
	}

	lex := &model.Lexicon{
		ID:       id,
		Language: model.DefaultLanguage,
	}
	for _, at := range pls.Attrs {
		if at.Name.Local == "lang" && strings.TrimSpace(at.Value) != "" {
			lex.Language = strings.TrimSpace(at.Value)
		}
	}

	alphabet := strings.TrimSpace(pls.Alphabet)
	if alphabet == "" {
		alphabet = model.DefaultAlphabet
	}

	for _, lx := range pls.Lexemes {
		phoneme, phAlphabet := firstPhoneme(lx.Phonemes)
		if phoneme == "" {
			continue
		}
		if phAlphabet == "" {
			phAlphabet = alphabet
		}

		for _, g := range lx.Graphemes {
			grapheme := norm.NFC.String(strings.TrimSpace(g))
			if grapheme == "" {
				continue
			}
			lex.Entries = append(lex.Entries, model.LexiconEntry{
				Grapheme: grapheme,
				Phoneme:  phoneme,
				Alphabet: phAlphabet,
			})
		}
	}

	return lex, nil
}

// firstPhoneme returns the first non-empty phoneme of a lexeme and its
// alphabet override, if any.
func firstPhoneme(phonemes []plsPhoneme) (string, string) {
	for _, ph := range phonemes {
		if v := norm.NFC.String(strings.TrimSpace(ph.Value)); v != "" {
			return v, strings.TrimSpace(ph.Alphabet)
		}
	}
	return "", ""
}
