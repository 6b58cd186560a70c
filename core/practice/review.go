package practice

import (
	"regexp"
	"sort"
	"strings"
)

// The review exercises grade a whole submission at once: a fill-in table
// of special trig values and a drag-and-drop assignment of the six
// functions to positive/negative per quadrant. Grading here is looser
// than the lesson answer checker since students type plain text, not
// LaTeX: radicals may be spelled "sqrt" or "√" and any of the usual
// "undefined" spellings count.

// FunctionNames lists the six trig functions in table-column order.
var FunctionNames = []string{"sin", "cos", "tan", "csc", "sec", "cot"}

// ValueRow is one row of the special-values reference table.
type ValueRow struct {
	Angle  string            `json:"angle"`
	Values map[string]string `json:"values"`
}

// SpecialValueRows is the reference table of exact values the students
// reproduce from memory, seven angles by six functions.
var SpecialValueRows = []ValueRow{
	{"0", map[string]string{"sin": "0", "cos": "1", "tan": "0", "csc": "undefined", "sec": "1", "cot": "undefined"}},
	{"π/6", map[string]string{"sin": "1/2", "cos": "√3/2", "tan": "√3/3", "csc": "2", "sec": "2√3/3", "cot": "√3"}},
	{"π/4", map[string]string{"sin": "√2/2", "cos": "√2/2", "tan": "1", "csc": "√2", "sec": "√2", "cot": "1"}},
	{"π/3", map[string]string{"sin": "√3/2", "cos": "1/2", "tan": "√3", "csc": "2√3/3", "sec": "2", "cot": "√3/3"}},
	{"π/2", map[string]string{"sin": "1", "cos": "0", "tan": "undefined", "csc": "1", "sec": "undefined", "cot": "0"}},
	{"π", map[string]string{"sin": "0", "cos": "-1", "tan": "0", "csc": "undefined", "sec": "-1", "cot": "undefined"}},
	{"3π/2", map[string]string{"sin": "-1", "cos": "0", "tan": "undefined", "csc": "-1", "sec": "undefined", "cot": "0"}},
}

// SignAssignment is the student's placement of function names into the
// positive and negative buckets of one quadrant.
type SignAssignment struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// ExpectedSigns gives the correct bucket contents per quadrant.
var ExpectedSigns = map[string]SignAssignment{
	"I":   {Positive: []string{"sin", "cos", "tan", "csc", "sec", "cot"}, Negative: nil},
	"II":  {Positive: []string{"sin", "csc"}, Negative: []string{"cos", "sec", "tan", "cot"}},
	"III": {Positive: []string{"tan", "cot"}, Negative: []string{"sin", "csc", "cos", "sec"}},
	"IV":  {Positive: []string{"cos", "sec"}, Negative: []string{"sin", "csc", "tan", "cot"}},
}

var undefinedAliasRegex = regexp.MustCompile(`inf|infinity|undefined|undef|--|—`)

// NormalizeTableValue reduces a typed table entry to comparison form.
func NormalizeTableValue(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = whitespaceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "π", "pi")
	s = strings.ReplaceAll(s, "sqrt", "√")
	s = undefinedAliasRegex.ReplaceAllString(s, "undefined")
	return s
}

// NormalizeQuadrantLabel reduces a quadrant label to the bare roman
// numeral, accepting forms like " q3 " or "QII".
func NormalizeQuadrantLabel(value string) string {
	s := strings.ToUpper(strings.TrimSpace(value))
	return strings.TrimPrefix(s, "Q")
}

// CheckValueTable grades a full table submission. Answers are keyed
// "<angle>:<function>", e.g. "π/6:sin"; a missing key counts as an empty
// answer. The whole table must match for the submission to pass.
func CheckValueTable(answers map[string]string) bool {
	for _, row := range SpecialValueRows {
		for _, fn := range FunctionNames {
			expected := NormalizeTableValue(row.Values[fn])
			actual := NormalizeTableValue(answers[row.Angle+":"+fn])
			if expected != actual {
				return false
			}
		}
	}
	return true
}

// SignReview is the graded result of the quadrant-signs exercise.
type SignReview struct {
	LabelsCorrect bool `json:"labelsCorrect"`
	SignsCorrect  bool `json:"signsCorrect"`
	IsCorrect     bool `json:"isCorrect"`
}

// CheckQuadrantSigns grades the quadrant labels and the sign buckets.
// Bucket order does not matter, membership does; every quadrant must
// match exactly.
func CheckQuadrantSigns(labels map[string]string, assignments map[string]SignAssignment) SignReview {
	labelsCorrect := true
	for _, quadrant := range []string{"I", "II", "III", "IV"} {
		if NormalizeQuadrantLabel(labels[quadrant]) != quadrant {
			labelsCorrect = false
			break
		}
	}

	signsCorrect := true
	for quadrant, expected := range ExpectedSigns {
		actual := assignments[quadrant]
		if !sameMembers(expected.Positive, actual.Positive) || !sameMembers(expected.Negative, actual.Negative) {
			signsCorrect = false
			break
		}
	}

	return SignReview{
		LabelsCorrect: labelsCorrect,
		SignsCorrect:  signsCorrect,
		IsCorrect:     labelsCorrect && signsCorrect,
	}
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := append([]string(nil), a...), append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
