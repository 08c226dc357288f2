// Package normalize supplies ready-made Transform callables for the common
// per-token normalization cases, mirroring the normalizer dispatch of a
// typical tokenizer implementation, but as plain reusable functions rather
// than a string-keyed switch.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Lower lowercases text.
func Lower(text string) string {
	return strings.ToLower(text)
}

// NFC applies Unicode NFC normalization.
func NFC(text string) string {
	return norm.NFC.String(text)
}

// NFD applies Unicode NFD normalization.
func NFD(text string) string {
	return norm.NFD.String(text)
}

// NFKC applies Unicode NFKC normalization.
func NFKC(text string) string {
	return norm.NFKC.String(text)
}

// NFKD applies Unicode NFKD normalization.
func NFKD(text string) string {
	return norm.NFKD.String(text)
}

// StripAccents decomposes text under NFD and removes nonspacing combining
// marks, leaving the base letters.
func StripAccents(text string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(text) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
