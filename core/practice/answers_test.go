package practice

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowercases", "  \\Pi/6  ", `\pi/6`},
		{"strips internal whitespace", `\frac{ 1 }{ 2 }`, `\frac{1}{2}`},
		{"pi glyph becomes macro", "π/6", `\pi/6`},
		{"bare pi becomes macro", "PI/6", `\pi/6`},
		{"sizing commands stripped", `\left(\frac{1}{2}\right)`, `(\frac{1}{2})`},
		{"dfrac collapses", `\dfrac{1}{2}`, `\frac{1}{2}`},
		{"tfrac collapses", `\tfrac{1}{2}`, `\frac{1}{2}`},
		{"bare sqrt braced", `\sqrt3/2`, `\sqrt{3}/2`},
		{"bare sqrt variable braced", `\sqrtx`, `\sqrt{x}`},
		{"braced sqrt untouched", `\sqrt{3}/2`, `\sqrt{3}/2`},
		{"leading point artifact stripped", `P(1/2, \sqrt3/2)`, `(1/2,\sqrt{3}/2)`},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAnswer(tt.input); got != tt.want {
				t.Errorf("failed! got = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestIsAnswerAcceptable(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		acceptable []string
		want       bool
	}{
		{"glyph vs macro", "π/6", []string{`\pi/6`}, true},
		{"case insensitive", "PI/6", []string{`\pi/6`}, true},
		{"bare sqrt", `\sqrt3/2`, []string{`\sqrt{3}/2`}, true},
		{"matches any of several", "1/2", []string{`\frac{1}{2}`, "1/2", "0.5"}, true},
		{"wrong answer", `\pi/3`, []string{`\pi/6`}, false},
		{"empty list accepts any attempt", "anything", nil, true},
		{"empty list rejects blank attempt", "   ", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAnswerAcceptable(tt.input, tt.acceptable); got != tt.want {
				t.Errorf("failed! got = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestIsCoordinateAcceptable(t *testing.T) {
	tests := []struct {
		name       string
		x, y       string
		acceptable []string
		want       bool
	}{
		{"joined pair matches", "1/2", `\sqrt3/2`, []string{`(1/2, \sqrt{3}/2)`}, true},
		{"bare pair matches", "1/2", `\sqrt{3}/2`, []string{`1/2, \sqrt{3}/2`}, true},
		{"single part matches", `\pi/4`, "", []string{`\pi/4`}, true},
		{"wrong pair", "1/2", "1/2", []string{`(1/2, \sqrt{3}/2)`}, false},
		{"empty list needs both parts", "1", "2", nil, true},
		{"empty list rejects half attempt", "1", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCoordinateAcceptable(tt.x, tt.y, tt.acceptable); got != tt.want {
				t.Errorf("failed! got = %v; want %v", got, tt.want)
			}
		})
	}
}
