package practice

import "testing"

func perfectTableAnswers() map[string]string {
	answers := make(map[string]string)
	for _, row := range SpecialValueRows {
		for _, fn := range FunctionNames {
			answers[row.Angle+":"+fn] = row.Values[fn]
		}
	}
	return answers
}

func TestCheckValueTable(t *testing.T) {
	t.Run("exact table passes", func(t *testing.T) {
		if !CheckValueTable(perfectTableAnswers()) {
			t.Error("failed! exact reference answers graded incorrect")
		}
	})

	t.Run("loose spellings pass", func(t *testing.T) {
		answers := perfectTableAnswers()
		answers["π/6:cos"] = " sqrt3 / 2 "
		answers["π/2:tan"] = "UNDEF"
		answers["π:csc"] = "inf"
		answers["3π/2:cot"] = " 0 "
		if !CheckValueTable(answers) {
			t.Error("failed! loose spellings graded incorrect")
		}
	})

	t.Run("one wrong cell fails the table", func(t *testing.T) {
		answers := perfectTableAnswers()
		answers["π/4:sin"] = "1/2"
		if CheckValueTable(answers) {
			t.Error("failed! wrong cell graded correct")
		}
	})

	t.Run("missing cell fails the table", func(t *testing.T) {
		answers := perfectTableAnswers()
		delete(answers, "0:sec")
		if CheckValueTable(answers) {
			t.Error("failed! missing cell graded correct")
		}
	})
}

func TestNormalizeQuadrantLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" i ", "I"},
		{"QII", "II"},
		{"q3", "3"},
		{"IV", "IV"},
	}
	for _, tt := range tests {
		if got := NormalizeQuadrantLabel(tt.input); got != tt.want {
			t.Errorf("failed! NormalizeQuadrantLabel(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}

func TestCheckQuadrantSigns(t *testing.T) {
	correctLabels := map[string]string{"I": "I", "II": "ii", "III": "qIII", "IV": " IV "}
	correctAssignments := map[string]SignAssignment{
		"I":   {Positive: []string{"cot", "sec", "csc", "tan", "cos", "sin"}},
		"II":  {Positive: []string{"csc", "sin"}, Negative: []string{"cot", "tan", "sec", "cos"}},
		"III": {Positive: []string{"cot", "tan"}, Negative: []string{"sec", "cos", "csc", "sin"}},
		"IV":  {Positive: []string{"sec", "cos"}, Negative: []string{"cot", "tan", "csc", "sin"}},
	}

	t.Run("correct in any order", func(t *testing.T) {
		review := CheckQuadrantSigns(correctLabels, correctAssignments)
		if !review.LabelsCorrect || !review.SignsCorrect || !review.IsCorrect {
			t.Errorf("failed! review = %+v; want all correct", review)
		}
	})

	t.Run("bad label", func(t *testing.T) {
		labels := map[string]string{"I": "I", "II": "III", "III": "II", "IV": "IV"}
		review := CheckQuadrantSigns(labels, correctAssignments)
		if review.LabelsCorrect || review.IsCorrect {
			t.Errorf("failed! review = %+v; want labels incorrect", review)
		}
		if !review.SignsCorrect {
			t.Errorf("failed! signs should still grade correct")
		}
	})

	t.Run("misplaced function", func(t *testing.T) {
		assignments := map[string]SignAssignment{
			"I":   correctAssignments["I"],
			"II":  {Positive: []string{"sin", "csc", "tan"}, Negative: []string{"cos", "sec", "cot"}},
			"III": correctAssignments["III"],
			"IV":  correctAssignments["IV"],
		}
		review := CheckQuadrantSigns(correctLabels, assignments)
		if review.SignsCorrect || review.IsCorrect {
			t.Errorf("failed! review = %+v; want signs incorrect", review)
		}
	})

	t.Run("empty submission", func(t *testing.T) {
		review := CheckQuadrantSigns(map[string]string{}, map[string]SignAssignment{})
		if review.IsCorrect {
			t.Error("failed! empty submission graded correct")
		}
	})
}
