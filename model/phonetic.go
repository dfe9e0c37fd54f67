package model

// DefaultAlphabet is the phonetic alphabet assumed when none is declared.
const DefaultAlphabet = "ipa"

// Annotation records one inline phoneme markup found during extraction.
type Annotation struct {
	OriginalText string `json:"originalText"`
	Phoneme      string `json:"phoneme"`
	Alphabet     string `json:"alphabet"`
}

// Lexicon is a grapheme to phoneme substitution table.
type Lexicon struct {
	ID       string         `json:"id"`
	Language string         `json:"language"`
	Entries  []LexiconEntry `json:"entries"`
}

// LexiconEntry maps one written form to its pronunciation.
type LexiconEntry struct {
	Grapheme string `json:"grapheme"`
	Phoneme  string `json:"phoneme"`
	Alphabet string `json:"alphabet"`
}
