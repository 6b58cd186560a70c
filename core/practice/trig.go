package practice

import (
	"fmt"
	"math"
	"math/rand"
)

// epsilon for matching computed trig values against the exact special
// values of the unit circle.
const valueEpsilon = 1e-6

// Angle is one of the special unit-circle angles drilled in practice mode.
type Angle struct {
	Latex   string  // display form, e.g. \frac{\pi}{6}
	Radians float64 // exact-value radians
}

// SpecialAngles lists the sixteen unit-circle angles in [0, 2π), in order.
var SpecialAngles = []Angle{
	{"0", 0},
	{`\frac{\pi}{6}`, math.Pi / 6},
	{`\frac{\pi}{4}`, math.Pi / 4},
	{`\frac{\pi}{3}`, math.Pi / 3},
	{`\frac{\pi}{2}`, math.Pi / 2},
	{`\frac{2\pi}{3}`, 2 * math.Pi / 3},
	{`\frac{3\pi}{4}`, 3 * math.Pi / 4},
	{`\frac{5\pi}{6}`, 5 * math.Pi / 6},
	{`\pi`, math.Pi},
	{`\frac{7\pi}{6}`, 7 * math.Pi / 6},
	{`\frac{5\pi}{4}`, 5 * math.Pi / 4},
	{`\frac{4\pi}{3}`, 4 * math.Pi / 3},
	{`\frac{3\pi}{2}`, 3 * math.Pi / 2},
	{`\frac{5\pi}{3}`, 5 * math.Pi / 3},
	{`\frac{7\pi}{4}`, 7 * math.Pi / 4},
	{`\frac{11\pi}{6}`, 11 * math.Pi / 6},
}

// specialValues maps the magnitudes that occur as sin/cos/tan of special
// angles to their exact LaTeX spelling. Matching is by closeness, never
// by float equality.
var specialValues = []struct {
	value float64
	latex string
}{
	{0, "0"},
	{1, "1"},
	{0.5, `\frac{1}{2}`},
	{math.Sqrt2 / 2, `\frac{\sqrt{2}}{2}`},
	{math.Sqrt(3) / 2, `\frac{\sqrt{3}}{2}`},
	{math.Sqrt(3), `\sqrt{3}`},
	{math.Sqrt(3) / 3, `\frac{\sqrt{3}}{3}`},
}

// SimplifyValue renders a computed trig value as its exact LaTeX form.
// Non-finite input (tan at an odd multiple of π/2 overflows) renders as
// the literal "undefined"; values that match no special constant fall
// back to a short decimal, which should not happen for special angles.
func SimplifyValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "undefined"
	}
	mag := math.Abs(v)
	for _, sv := range specialValues {
		if math.Abs(mag-sv.value) < valueEpsilon {
			if v < -valueEpsilon {
				return "-" + sv.latex
			}
			return sv.latex
		}
	}
	return fmt.Sprintf("%.4f", v)
}

var evaluationFuncs = []struct {
	name string
	eval func(float64) float64
}{
	{"sin", math.Sin},
	{"cos", math.Cos},
	{"tan", math.Tan},
}

// EvaluationProblem asks for the exact value of sin, cos or tan at a
// special angle.
type EvaluationProblem struct {
	FunctionName string  `json:"functionName"`
	AngleLatex   string  `json:"angleLatex"`
	Radians      float64 `json:"radians"`
	Answer       string  `json:"answer"`
}

// NewEvaluationProblem draws a random function/angle pair. Tangent at an
// angle whose cosine vanishes is reported as "undefined" rather than the
// huge float math.Tan returns there.
func NewEvaluationProblem(rng *rand.Rand) EvaluationProblem {
	f := evaluationFuncs[rng.Intn(len(evaluationFuncs))]
	angle := SpecialAngles[rng.Intn(len(SpecialAngles))]

	p := EvaluationProblem{
		FunctionName: f.name,
		AngleLatex:   angle.Latex,
		Radians:      angle.Radians,
	}
	if f.name == "tan" && math.Abs(math.Cos(angle.Radians)) < valueEpsilon {
		p.Answer = "undefined"
		return p
	}
	p.Answer = SimplifyValue(f.eval(angle.Radians))
	return p
}

var parityVariables = []string{"x", `\theta`, "t", `\alpha`}

// ParityProblem asks the student to rewrite f(-cv) using the even/odd
// identity of f. Cosine is even, sine and tangent are odd.
type ParityProblem struct {
	FunctionName string `json:"functionName"`
	Expression   string `json:"expression"`
	IsEven       bool   `json:"isEven"`
	Answer       string `json:"answer"`
}

// NewParityProblem draws a function, a variable and a coefficient in 1..9.
func NewParityProblem(rng *rand.Rand) ParityProblem {
	name := []string{"sin", "cos", "tan"}[rng.Intn(3)]
	variable := parityVariables[rng.Intn(len(parityVariables))]
	coeff := rng.Intn(9) + 1

	arg := variable
	if coeff > 1 {
		arg = fmt.Sprintf("%d%s", coeff, variable)
	}
	p := ParityProblem{
		FunctionName: name,
		Expression:   fmt.Sprintf(`\%s(-%s)`, name, arg),
		IsEven:       name == "cos",
	}
	if p.IsEven {
		p.Answer = fmt.Sprintf(`\%s(%s)`, name, arg)
	} else {
		p.Answer = fmt.Sprintf(`-\%s(%s)`, name, arg)
	}
	return p
}

// principal-value tables for the inverse problems. Inputs are the special
// values each inverse function is defined on, outputs the principal angle.
var inverseTables = map[string][]struct {
	valueLatex string
	answer     string
}{
	"arcsin": {
		{"-1", `-\frac{\pi}{2}`},
		{`-\frac{\sqrt{3}}{2}`, `-\frac{\pi}{3}`},
		{`-\frac{\sqrt{2}}{2}`, `-\frac{\pi}{4}`},
		{`-\frac{1}{2}`, `-\frac{\pi}{6}`},
		{"0", "0"},
		{`\frac{1}{2}`, `\frac{\pi}{6}`},
		{`\frac{\sqrt{2}}{2}`, `\frac{\pi}{4}`},
		{`\frac{\sqrt{3}}{2}`, `\frac{\pi}{3}`},
		{"1", `\frac{\pi}{2}`},
	},
	"arccos": {
		{"-1", `\pi`},
		{`-\frac{\sqrt{3}}{2}`, `\frac{5\pi}{6}`},
		{`-\frac{\sqrt{2}}{2}`, `\frac{3\pi}{4}`},
		{`-\frac{1}{2}`, `\frac{2\pi}{3}`},
		{"0", `\frac{\pi}{2}`},
		{`\frac{1}{2}`, `\frac{\pi}{3}`},
		{`\frac{\sqrt{2}}{2}`, `\frac{\pi}{4}`},
		{`\frac{\sqrt{3}}{2}`, `\frac{\pi}{6}`},
		{"1", "0"},
	},
	"arctan": {
		{`-\sqrt{3}`, `-\frac{\pi}{3}`},
		{"-1", `-\frac{\pi}{4}`},
		{`-\frac{\sqrt{3}}{3}`, `-\frac{\pi}{6}`},
		{"0", "0"},
		{`\frac{\sqrt{3}}{3}`, `\frac{\pi}{6}`},
		{"1", `\frac{\pi}{4}`},
		{`\sqrt{3}`, `\frac{\pi}{3}`},
	},
}

var inverseNames = []string{"arcsin", "arccos", "arctan"}

// InverseProblem asks for the principal value of an inverse trig function
// at a special input.
type InverseProblem struct {
	FunctionName string `json:"functionName"`
	ValueLatex   string `json:"valueLatex"`
	Answer       string `json:"answer"`
}

// NewInverseProblem draws a function and an input from its principal-value
// table.
func NewInverseProblem(rng *rand.Rand) InverseProblem {
	name := inverseNames[rng.Intn(len(inverseNames))]
	table := inverseTables[name]
	entry := table[rng.Intn(len(table))]
	return InverseProblem{
		FunctionName: name,
		ValueLatex:   entry.valueLatex,
		Answer:       entry.answer,
	}
}
