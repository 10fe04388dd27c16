package match

import (
	"strings"
	"unicode"
)

// byteOrderMark is the UTF-8 encoding of U+FEFF.
const byteOrderMark = "\ufeff"

// NormalizeHeader removes every space and double-quote character from a raw
// header cell. Nothing else is trimmed and case is preserved.
func NormalizeHeader(s string) string {
	if !strings.ContainsAny(s, ` "`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == ' ' || r == '"' {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// StripBOM drops a leading UTF-8 byte order mark.
func StripBOM(line string) string {
	return strings.TrimPrefix(line, byteOrderMark)
}

// NormalizeIdent normalizes an identifier for fuzzy matching:
// CamelCase is tokenized, tokens are lowered and separators (_, -, space) dropped.
// It is only used to rank suggestions, never to decide a match.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "first_name" -> ["first", "name"]
//   - "XMLParser" -> ["XML", "Parser"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// "XMLParser" -> split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
