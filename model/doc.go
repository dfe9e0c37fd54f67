// Package model provides the output representation of a parsed manuscript.
//
// A parse produces one [Document]: book-level metadata, the ordered list of
// narrative [Chapter] values and the pronunciation [Lexicon] tables found in
// the container. Values are built once and never mutated afterwards, so a
// Document can be handed to other goroutines or serialized as-is.
//
// # Chapters
//
// Each [Chapter] carries two renditions of the same text:
//
//   - PlainText - the text to count, display or send to a narrator
//   - AnnotatedText - the same text with inline SSML phoneme markers
//
// CharacterCount and EstimatedDurationSeconds are derived from PlainText by
// [NewChapter] and are always consistent with it:
//
//	ch := model.NewChapter(1, "Prologue", plain, annotated, nil)
//	fmt.Println(ch.CharacterCount, ch.EstimatedDurationSeconds)
//
// # Narration estimates
//
// Durations assume a fixed narration rate of [CharsPerSecond] characters per
// second; see [EstimateDuration].
package model
