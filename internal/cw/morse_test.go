package cw

import (
	"testing"
)

func TestTreeTable_Lookup(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
		ok     bool
	}{
		{".", "E", true},
		{"-", "T", true},
		{".-", "A", true},
		{"-...", "B", true},
		{"--.-", "Q", true},
		{"--..", "Z", true},
		{".----", "1", true},
		{"-----", "0", true},
		{"----.", "9", true},
		{"..--", "", false},
		{"......", "", false},
		{"", "", false},
		{".x-", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, ok := TreeTable{}.Lookup(tt.symbol)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.symbol, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// TestTreeTable_MatchesITU cross-checks the tree against the plain ITU map.
func TestTreeTable_MatchesITU(t *testing.T) {
	itu := map[string]string{
		".-": "A", "-...": "B", "-.-.": "C", "-..": "D", ".": "E",
		"..-.": "F", "--.": "G", "....": "H", "..": "I", ".---": "J",
		"-.-": "K", ".-..": "L", "--": "M", "-.": "N", "---": "O",
		".--.": "P", "--.-": "Q", ".-.": "R", "...": "S", "-": "T",
		"..-": "U", "...-": "V", ".--": "W", "-..-": "X", "-.--": "Y",
		"--..": "Z", "-----": "0", ".----": "1", "..---": "2", "...--": "3",
		"....-": "4", ".....": "5", "-....": "6", "--...": "7", "---..": "8",
		"----.": "9",
	}
	for symbol, want := range itu {
		if got, ok := (TreeTable{}).Lookup(symbol); !ok || got != want {
			t.Errorf("Lookup(%q) = %q, %v; want %q", symbol, got, ok, want)
		}
	}
}

func TestDefaultTable_Shorthand(t *testing.T) {
	got, ok := DefaultTable().Lookup("...---...")
	if !ok || got != "SOS" {
		t.Errorf("Lookup(SOS) = %q, %v; want \"SOS\", true", got, ok)
	}
}

func TestNewTable_CustomOverrides(t *testing.T) {
	table, err := NewTable(map[string]string{".-.-.": "+", ".-": "Alpha"})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	tests := []struct {
		symbol string
		want   string
	}{
		{".-.-.", "+"},
		{".-", "Alpha"},
		{"-.-", "K"},
		{"...---...", "SOS"},
	}
	for _, tt := range tests {
		if got, ok := table.Lookup(tt.symbol); !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %q, %v; want %q", tt.symbol, got, ok, tt.want)
		}
	}
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		custom map[string]string
		want   error
	}{
		{"empty symbol", map[string]string{"": "X"}, ErrInvalidSymbol},
		{"bad marks", map[string]string{"._": "X"}, ErrInvalidSymbol},
		{"empty value", map[string]string{".-.-": ""}, ErrEmptyValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.custom); err != tt.want {
				t.Errorf("NewTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		elements []ElementKind
		want     string
	}{
		{"empty", nil, ""},
		{
			"A then word then B",
			[]ElementKind{
				DotMark, IntraGap, DashMark, WordGap,
				DashMark, IntraGap, DotMark, IntraGap, DotMark, IntraGap, DotMark,
			},
			".- / -...",
		},
		{
			"letter gap splits symbols",
			[]ElementKind{DotMark, IntraGap, DashMark, LetterGap, DotMark, IntraGap, DotMark},
			".- ..",
		},
		{
			"leading gaps are ignored",
			[]ElementKind{LetterGap, LetterGap, DotMark},
			".",
		},
		{
			"leading word gap still emits separator",
			[]ElementKind{WordGap, DashMark},
			"/ -",
		},
		{
			"consecutive word gaps",
			[]ElementKind{DotMark, WordGap, WordGap, DashMark},
			". / / -",
		},
		{
			"trailing symbol is flushed",
			[]ElementKind{DashMark, IntraGap, DashMark},
			"--",
		},
		{
			"trailing word gap",
			[]ElementKind{DotMark, WordGap},
			". /",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(Assemble(tt.elements)); got != tt.want {
				t.Errorf("Render(Assemble()) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssemble_OneMarkPerOnRun(t *testing.T) {
	elements := []ElementKind{
		DotMark, IntraGap, DotMark, LetterGap, DashMark, WordGap, DotMark, IntraGap, DashMark,
	}
	marks := 0
	for _, e := range elements {
		if e.IsMark() {
			marks++
		}
	}

	got := 0
	for _, tok := range Assemble(elements) {
		if tok == WordSeparator {
			continue
		}
		got += len(tok)
	}
	if got != marks {
		t.Errorf("tokens hold %d marks, want %d", got, marks)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		morse string
		want  string
	}{
		{"empty", "", ""},
		{"single letter", ".-", "A"},
		{"unknown symbol", ".- ...... -.-", "A ? K"},
		{"two words", ".- / -...", "A B"},
		{"duplicate separators", ". / / -", "E T"},
		{"leading and trailing separators", "/ ... --- ... /", "SOS"},
		{"shorthand", "...---...", "SOS"},
		{"extra whitespace", "  .-   -.-  ", "AK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.morse, DefaultTable()); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.morse, got, tt.want)
			}
		})
	}
}

func TestDecode_NilTableUsesDefault(t *testing.T) {
	if got := Decode("... --- ...", nil); got != "SOS" {
		t.Errorf("Decode() = %q, want %q", got, "SOS")
	}
}

func TestDecode_CustomTable(t *testing.T) {
	table := MapTable{".-": "x"}
	if got := Decode(".- -.-", table); got != "x?" {
		t.Errorf("Decode() = %q, want %q", got, "x?")
	}
}

func TestElementKind_String(t *testing.T) {
	kinds := map[ElementKind]string{
		DotMark: "dot", DashMark: "dash", IntraGap: "intra",
		LetterGap: "letter", WordGap: "word", ElementKind(99): "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("ElementKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
