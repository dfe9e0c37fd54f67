// Package htmldoc extracts narration text and chapter titles from XHTML
// content documents.
//
// [Extract] linearizes a body element into plain text and SSML-annotated text,
// keeping inline pronunciations (ssml:ph attributes) as phoneme markup.
// [InferTitle] chooses a chapter title from the table of contents label, the
// document's headings and a set of fallbacks.
package htmldoc
