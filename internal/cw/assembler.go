package cw

import (
	"strings"
)

// ElementKind is the semantic role of one classified run.
type ElementKind int

const (
	// DotMark is a short ON run
	DotMark ElementKind = iota
	// DashMark is a long ON run
	DashMark
	// IntraGap separates marks within one symbol
	IntraGap
	// LetterGap separates symbols
	LetterGap
	// WordGap separates words
	WordGap
)

// String returns the role name used in logs and reports.
func (k ElementKind) String() string {
	switch k {
	case DotMark:
		return "dot"
	case DashMark:
		return "dash"
	case IntraGap:
		return "intra"
	case LetterGap:
		return "letter"
	case WordGap:
		return "word"
	default:
		return "unknown"
	}
}

// IsMark reports whether the element is an ON run.
func (k ElementKind) IsMark() bool {
	return k == DotMark || k == DashMark
}

// Assemble turns classified elements into Morse tokens: one dot/dash string
// per symbol, plus "/" for every word gap. A word gap always emits "/", even
// right after another word gap.
func Assemble(elements []ElementKind) []string {
	tokens := make([]string, 0)
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, e := range elements {
		switch e {
		case DotMark:
			current.WriteByte(Dot)
		case DashMark:
			current.WriteByte(Dash)
		case LetterGap:
			flush()
		case WordGap:
			flush()
			tokens = append(tokens, WordSeparator)
		}
	}
	flush()

	return tokens
}

// Render joins tokens into a Morse string.
func Render(tokens []string) string {
	return strings.Join(tokens, " ")
}
