// Package phonetic builds SSML phoneme markup and applies pronunciation
// lexicons to narration text.
//
// Markup produced here has the form
//
//	<phoneme alphabet="ipa" ph="zɛrksiːz">Xerxes</phoneme>
//
// which narration engines that accept SSML read using the given phonemes.
package phonetic
