// Package cw assembles classified ON/OFF runs into Morse code and decodes
// Morse code into text.
package cw

import (
	"errors"
	"strings"
)

const (
	// Dot is the mark for a short ON run
	Dot = '.'
	// Dash is the mark for a long ON run
	Dash = '-'
	// WordSeparator is the token emitted for an inter-word gap
	WordSeparator = "/"
	// Unknown replaces symbols missing from the lookup table
	Unknown = "?"
)

// ITU gap lengths in dot units
const (
	// IntraCharSpaceRatio is the space between marks of one symbol
	IntraCharSpaceRatio = 1.0
	// InterCharSpaceRatio is the space between symbols
	InterCharSpaceRatio = 3.0
	// WordSpaceRatio is the space between words
	WordSpaceRatio = 7.0
)

var (
	// ErrInvalidSymbol indicates a custom symbol must be a non-empty string of dots and dashes
	ErrInvalidSymbol = errors.New("symbol must be a non-empty string of '.' and '-'")
	// ErrEmptyValue indicates a custom symbol must map to non-empty text
	ErrEmptyValue = errors.New("symbol value must not be empty")
)

// Table maps a Morse symbol (e.g. ".-") to its text.
type Table interface {
	Lookup(symbol string) (string, bool)
}

// MorseTree is the binary tree for Morse code lookup.
// Left branch = dot, Right branch = dash.
// Index 1 is the root; parent at i, left child at 2i, right child at 2i+1.
var MorseTree = [64]rune{
	0, 0,
	'E', 'T', // 2-3
	'I', 'A', 'N', 'M', // 4-7
	'S', 'U', 'R', 'W', 'D', 'K', 'G', 'O', // 8-15
	'H', 'V', 'F', 0, 'L', 0, 'P', 'J', // 16-23
	'B', 'X', 'C', 'Y', 'Z', 'Q', 0, 0, // 24-31
	'5', '4', 0, '3', 0, 0, 0, '2', // 32-39
	0, 0, 0, 0, 0, 0, 0, '1', // 40-47
	'6', 0, 0, 0, 0, 0, 0, 0, // 48-55
	'7', 0, 0, 0, '8', 0, '9', '0', // 56-63
}

// TreeTable looks symbols up in MorseTree. It covers A-Z and 0-9.
type TreeTable struct{}

// Lookup walks the tree one mark at a time.
func (TreeTable) Lookup(symbol string) (string, bool) {
	if symbol == "" {
		return "", false
	}
	idx := 1
	for _, mark := range symbol {
		switch mark {
		case Dot:
			idx = idx * 2
		case Dash:
			idx = idx*2 + 1
		default:
			return "", false
		}
		if idx >= len(MorseTree) {
			return "", false
		}
	}
	if MorseTree[idx] == 0 {
		return "", false
	}
	return string(MorseTree[idx]), true
}

// MapTable is a Table backed by a map, used for shorthand and custom entries.
type MapTable map[string]string

// Lookup returns the mapped text.
func (m MapTable) Lookup(symbol string) (string, bool) {
	v, ok := m[symbol]
	return v, ok
}

// Chain tries each table in order and returns the first hit.
type Chain []Table

// Lookup returns the first table's answer that knows symbol.
func (c Chain) Lookup(symbol string) (string, bool) {
	for _, t := range c {
		if v, ok := t.Lookup(symbol); ok {
			return v, true
		}
	}
	return "", false
}

// Shorthand holds multi-letter entries recognised as a single symbol.
var Shorthand = MapTable{
	"...---...": "SOS",
}

// DefaultTable returns the standard letters and digits plus Shorthand.
func DefaultTable() Table {
	return Chain{Shorthand, TreeTable{}}
}

// NewTable returns DefaultTable with custom entries taking precedence.
func NewTable(custom map[string]string) (Table, error) {
	if len(custom) == 0 {
		return DefaultTable(), nil
	}
	extra := make(MapTable, len(custom))
	for symbol, text := range custom {
		if err := ValidateSymbol(symbol); err != nil {
			return nil, err
		}
		if text == "" {
			return nil, ErrEmptyValue
		}
		extra[symbol] = text
	}
	return Chain{extra, Shorthand, TreeTable{}}, nil
}

// ValidateSymbol checks that symbol only contains marks.
func ValidateSymbol(symbol string) error {
	if symbol == "" || strings.Trim(symbol, ".-") != "" {
		return ErrInvalidSymbol
	}
	return nil
}
