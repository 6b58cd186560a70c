package practice

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestSimplifyValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "0"},
		{"near zero snaps", 1e-7, "0"},
		{"one", math.Sin(math.Pi / 2), "1"},
		{"negative one", math.Cos(math.Pi), "-1"},
		{"half", math.Sin(math.Pi / 6), `\frac{1}{2}`},
		{"negative half", math.Cos(2 * math.Pi / 3), `-\frac{1}{2}`},
		{"sqrt2 over 2", math.Cos(math.Pi / 4), `\frac{\sqrt{2}}{2}`},
		{"sqrt3 over 2", math.Sin(math.Pi / 3), `\frac{\sqrt{3}}{2}`},
		{"sqrt3", math.Tan(math.Pi / 3), `\sqrt{3}`},
		{"sqrt3 over 3", math.Tan(math.Pi / 6), `\frac{\sqrt{3}}{3}`},
		{"negative sqrt3 over 3", math.Tan(11 * math.Pi / 6), `-\frac{\sqrt{3}}{3}`},
		{"nan", math.NaN(), "undefined"},
		{"inf", math.Inf(1), "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimplifyValue(tt.value); got != tt.want {
				t.Errorf("failed! got = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestNewEvaluationProblemTangentUndefined(t *testing.T) {
	// every special angle whose cosine vanishes must grade tangent as the
	// literal "undefined", never the huge float math.Tan returns there
	for _, angle := range SpecialAngles {
		if math.Abs(math.Cos(angle.Radians)) >= valueEpsilon {
			continue
		}

		rng := rand.New(rand.NewSource(1))
		var p EvaluationProblem
		for i := 0; i < 1000; i++ {
			p = NewEvaluationProblem(rng)
			if p.FunctionName == "tan" && p.AngleLatex == angle.Latex {
				break
			}
		}
		if p.FunctionName != "tan" || p.AngleLatex != angle.Latex {
			t.Fatalf("never drew tan at %s in 1000 draws", angle.Latex)
		}
		if p.Answer != "undefined" {
			t.Errorf("failed! answer = %q; want %q", p.Answer, "undefined")
		}
	}
}

func TestNewEvaluationProblemAnswersAreExact(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p := NewEvaluationProblem(rng)
		if p.Answer == "" {
			t.Fatalf("empty answer for %s(%s)", p.FunctionName, p.AngleLatex)
		}
		if strings.Contains(p.Answer, ".") {
			t.Errorf("failed! %s(%s) fell back to a decimal: %q", p.FunctionName, p.AngleLatex, p.Answer)
		}
	}
}

func TestNewParityProblem(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		p := NewParityProblem(rng)

		if !strings.Contains(p.Expression, "(-") {
			t.Fatalf("expression %q does not negate its argument", p.Expression)
		}
		switch p.FunctionName {
		case "cos":
			if !p.IsEven {
				t.Errorf("failed! cos must be even")
			}
			if strings.HasPrefix(p.Answer, "-") {
				t.Errorf("failed! even answer %q starts with a minus", p.Answer)
			}
		case "sin", "tan":
			if p.IsEven {
				t.Errorf("failed! %s must be odd", p.FunctionName)
			}
			if !strings.HasPrefix(p.Answer, `-\`) {
				t.Errorf("failed! odd answer %q does not pull the minus out", p.Answer)
			}
		default:
			t.Fatalf("unexpected function %q", p.FunctionName)
		}
	}
}

func TestNewInverseProblemPrincipalValues(t *testing.T) {
	// spot-check the principal-value tables against the closed forms
	tests := []struct {
		fn    string
		value string
		want  string
	}{
		{"arcsin", "1", `\frac{\pi}{2}`},
		{"arcsin", `-\frac{1}{2}`, `-\frac{\pi}{6}`},
		{"arccos", "-1", `\pi`},
		{"arccos", `\frac{\sqrt{2}}{2}`, `\frac{\pi}{4}`},
		{"arctan", `\sqrt{3}`, `\frac{\pi}{3}`},
		{"arctan", "0", "0"},
	}
	for _, tt := range tests {
		found := false
		for _, entry := range inverseTables[tt.fn] {
			if entry.valueLatex == tt.value {
				found = true
				if entry.answer != tt.want {
					t.Errorf("failed! %s(%s) = %q; want %q", tt.fn, tt.value, entry.answer, tt.want)
				}
			}
		}
		if !found {
			t.Errorf("%s table has no entry for %s", tt.fn, tt.value)
		}
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		p := NewInverseProblem(rng)
		if p.Answer == "" || p.ValueLatex == "" {
			t.Fatalf("incomplete problem: %+v", p)
		}
	}
}
