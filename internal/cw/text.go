package cw

import (
	"strings"
)

// Decode converts a Morse string into text. Tokens are whitespace separated,
// "/" ends the current word, and symbols the table does not know become "?".
// Repeated separators never produce empty words.
func Decode(morse string, table Table) string {
	if table == nil {
		table = DefaultTable()
	}

	words := make([]string, 0)
	var word strings.Builder

	for _, symbol := range strings.Fields(morse) {
		if symbol == WordSeparator {
			if word.Len() > 0 {
				words = append(words, word.String())
				word.Reset()
			}
			continue
		}
		if text, ok := table.Lookup(symbol); ok {
			word.WriteString(text)
		} else {
			word.WriteString(Unknown)
		}
	}
	if word.Len() > 0 {
		words = append(words, word.String())
	}

	return strings.Join(words, " ")
}
