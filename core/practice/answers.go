package practice

import (
	"regexp"
	"strings"
)

// Students type answers in a LaTeX-flavored shorthand and lesson authors
// write acceptable answers the same way, but neither side is consistent
// about spacing, casing, sizing commands or fraction/radical spelling.
// Equivalence is therefore decided on a normalized textual form; there is
// deliberately no numeric tolerance and no algebraic simplification, which
// keeps "what counts as correct" predictable for authors.

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	fracRegex       = regexp.MustCompile(`\\[dt]frac`)
	bareSqrtRegex   = regexp.MustCompile(`\\sqrt([0-9a-z])`)
)

// NormalizeAnswer reduces a free-text math answer to its canonical
// comparison form.
func NormalizeAnswer(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = whitespaceRegex.ReplaceAllString(s, "")

	// unify the pi spellings: the π glyph, the \pi macro and a bare "pi"
	// all compare equal.
	s = strings.ReplaceAll(s, `\pi`, "π")
	s = strings.ReplaceAll(s, "pi", "π")
	s = strings.ReplaceAll(s, "π", `\pi`)

	// sizing commands carry no meaning for comparison
	s = strings.ReplaceAll(s, `\left`, "")
	s = strings.ReplaceAll(s, `\right`, "")

	// display/text-style fractions collapse to \frac
	s = fracRegex.ReplaceAllString(s, `\frac`)

	// brace bare radicals: \sqrt3 -> \sqrt{3}
	s = bareSqrtRegex.ReplaceAllString(s, `\sqrt{$1}`)

	// authoring convention "P(x, y)" for "point P at ..." reduces to the
	// bare coordinate
	if strings.HasPrefix(s, "p(") {
		s = s[1:]
	}
	return s
}

// IsAnswerAcceptable reports whether the student input matches one of the
// acceptable answers after normalization. An empty acceptable list means
// the question only requires an attempt: any non-empty input passes.
func IsAnswerAcceptable(input string, acceptable []string) bool {
	normalized := NormalizeAnswer(input)
	if len(acceptable) == 0 {
		return normalized != ""
	}
	for _, answer := range acceptable {
		if normalized == NormalizeAnswer(answer) {
			return true
		}
	}
	return false
}

// IsCoordinateAcceptable is the two-part variant used by coordinate-style
// question blocks; single-value questions leave one part empty. With an
// empty acceptable list both parts must be filled in for the attempt to
// count.
func IsCoordinateAcceptable(x, y string, acceptable []string) bool {
	if len(acceptable) == 0 {
		return NormalizeAnswer(x) != "" && NormalizeAnswer(y) != ""
	}
	for _, candidate := range coordinateCandidates(x, y) {
		if IsAnswerAcceptable(candidate, acceptable) {
			return true
		}
	}
	return false
}

// coordinateCandidates lists the textual forms a two-part answer may take
// against a single acceptable-answer string: the joined "(x,y)" pair, or
// the lone non-empty part for single-value questions.
func coordinateCandidates(x, y string) []string {
	x, y = strings.TrimSpace(x), strings.TrimSpace(y)
	switch {
	case x != "" && y != "":
		return []string{"(" + x + "," + y + ")", x + "," + y}
	case x != "":
		return []string{x}
	case y != "":
		return []string{y}
	}
	return nil
}
