package core

import (
	"testing"
)

func mustPolynomial(t *testing.T, field *Field, coefficients []int64) *Polynomial {
	t.Helper()
	poly, err := NewPolynomialFromInt64(field, coefficients)
	if err != nil {
		t.Fatalf("NewPolynomialFromInt64(%v) failed: %v", coefficients, err)
	}
	return poly
}

// TestDegree tests degree computation including trimming and the zero
// polynomial sentinel
func TestDegree(t *testing.T) {
	field := mustField(t, 257)

	tests := []struct {
		name         string
		coefficients []int64
		want         int
	}{
		{"constant", []int64{5}, 0},
		{"linear", []int64{1, 2}, 1},
		{"cubic", []int64{3, 5, 2, 1}, 3},
		{"leading zeros trimmed", []int64{1, 2, 0, 0}, 1},
		{"zero polynomial", []int64{0}, -1},
		{"all zeros", []int64{0, 0, 0}, -1},
		{"interior zeros kept", []int64{1, 0, 2, 0, 3, 0}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := mustPolynomial(t, field, tt.coefficients)
			if got := poly.Degree(); got != tt.want {
				t.Errorf("Degree() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestEval tests Horner evaluation against hand-computed values
func TestEval(t *testing.T) {
	field := mustField(t, 3221225473)
	poly := mustPolynomial(t, field, []int64{1, 2, 3})

	tests := []struct {
		point int64
		want  int64
	}{
		{0, 1},
		{1, 6},
		{2, 17},
		{3, 34},
	}

	for _, tt := range tests {
		got := poly.Eval(field.NewElementFromInt64(tt.point))
		want := field.NewElementFromInt64(tt.want)
		if !got.Equal(want) {
			t.Errorf("p(%d) = %s, want %s", tt.point, got, want)
		}
	}
}

// TestDecomposeEvenOdd verifies p(x) = even(x^2) + x*odd(x^2) at every
// point of a small field
func TestDecomposeEvenOdd(t *testing.T) {
	field := mustField(t, 257)
	poly := mustPolynomial(t, field, []int64{3, 5, 2, 1, 9, 7})

	even, odd, err := poly.DecomposeEvenOdd()
	if err != nil {
		t.Fatalf("DecomposeEvenOdd failed: %v", err)
	}

	for raw := int64(0); raw < 257; raw++ {
		x := field.NewElementFromInt64(raw)
		xSquared := x.Square()
		recomposed := even.Eval(xSquared).Add(x.Mul(odd.Eval(xSquared)))
		if !recomposed.Equal(poly.Eval(x)) {
			t.Fatalf("decomposition mismatch at x = %d", raw)
		}
	}
}

// TestFold tests the folded coefficients against a hand-computed
// example
func TestFold(t *testing.T) {
	field := mustField(t, 3221225473)
	poly := mustPolynomial(t, field, []int64{1, 2, 3, 4, 5, 6})

	folded, err := poly.Fold(field.NewElementFromInt64(2))
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}

	// even = (1, 3, 5), odd = (2, 4, 6), folded = even + 2*odd
	want := mustPolynomial(t, field, []int64{5, 11, 17})
	if folded.Degree() != want.Degree() {
		t.Fatalf("folded degree = %d, want %d", folded.Degree(), want.Degree())
	}
	for i := 0; i <= want.Degree(); i++ {
		if !folded.Coefficient(i).Equal(want.Coefficient(i)) {
			t.Errorf("folded coefficient %d = %s, want %s", i, folded.Coefficient(i), want.Coefficient(i))
		}
	}
}

// TestFoldDegreeReduction verifies fold(beta) at most halves the
// degree, including the beta = 0 and beta = 1 boundary cases
func TestFoldDegreeReduction(t *testing.T) {
	field := mustField(t, 257)

	for _, degree := range []int{1, 2, 3, 6, 7, 15} {
		coefficients := make([]int64, degree+1)
		for i := range coefficients {
			coefficients[i] = int64(i + 1)
		}
		poly := mustPolynomial(t, field, coefficients)

		for _, beta := range []int64{0, 1, 42} {
			folded, err := poly.Fold(field.NewElementFromInt64(beta))
			if err != nil {
				t.Fatalf("Fold(degree=%d, beta=%d) failed: %v", degree, beta, err)
			}
			bound := (degree + 1) / 2 // ceil(degree/2)
			if degree%2 == 0 {
				bound = degree / 2
			}
			if folded.Degree() > bound {
				t.Errorf("fold of degree %d with beta %d has degree %d > %d",
					degree, beta, folded.Degree(), bound)
			}
			if folded.Degree() >= degree && degree > 0 {
				t.Errorf("fold of degree %d did not reduce the degree", degree)
			}
		}
	}
}

// TestFoldConsistency verifies the pointwise folding identity
// fold(beta)(x^2) = (p(x)+p(-x))/2 + beta*(p(x)-p(-x))/(2x)
func TestFoldConsistency(t *testing.T) {
	field := mustField(t, 257)
	poly := mustPolynomial(t, field, []int64{3, 5, 2, 1})
	beta := field.NewElementFromInt64(77)

	folded, err := poly.Fold(beta)
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}

	two := field.NewElementFromInt64(2)
	for raw := int64(1); raw < 257; raw++ {
		x := field.NewElementFromInt64(raw)
		v0 := poly.Eval(x)
		v1 := poly.Eval(x.Neg())

		even, err := v0.Add(v1).Div(two)
		if err != nil {
			t.Fatal(err)
		}
		odd, err := v0.Sub(v1).Div(two.Mul(x))
		if err != nil {
			t.Fatal(err)
		}

		want := even.Add(beta.Mul(odd))
		if got := folded.Eval(x.Square()); !got.Equal(want) {
			t.Fatalf("folding identity broken at x = %d: got %s, want %s", raw, got, want)
		}
	}
}

// TestEvalDomain verifies the parallel evaluation matches pointwise
// evaluation
func TestEvalDomain(t *testing.T) {
	field := mustField(t, 257)
	poly := mustPolynomial(t, field, []int64{3, 5, 2, 1})

	generator := field.NewElementFromInt64(3).ExpUint64(32) // order 8
	domain, err := NewDomain(generator, field.NewElementFromInt64(3), 8)
	if err != nil {
		t.Fatalf("NewDomain failed: %v", err)
	}

	evaluations := poly.EvalDomain(domain)
	if len(evaluations) != domain.Order() {
		t.Fatalf("EvalDomain returned %d values, want %d", len(evaluations), domain.Order())
	}
	for i, elem := range domain.Elements() {
		if !evaluations[i].Equal(poly.Eval(elem)) {
			t.Errorf("EvalDomain[%d] = %s, want %s", i, evaluations[i], poly.Eval(elem))
		}
	}
}

// TestInterpolate verifies Lagrange interpolation recovers a known
// polynomial
func TestInterpolate(t *testing.T) {
	field := mustField(t, 257)
	poly := mustPolynomial(t, field, []int64{3, 5, 2, 1})

	points := make([]*Point, 4)
	for i := range points {
		x := field.NewElementFromInt64(int64(i + 1))
		points[i] = NewPoint(x, poly.Eval(x))
	}

	recovered, err := Interpolate(points)
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if recovered.Degree() != poly.Degree() {
		t.Fatalf("recovered degree = %d, want %d", recovered.Degree(), poly.Degree())
	}
	for i := 0; i <= poly.Degree(); i++ {
		if !recovered.Coefficient(i).Equal(poly.Coefficient(i)) {
			t.Errorf("recovered coefficient %d = %s, want %s",
				i, recovered.Coefficient(i), poly.Coefficient(i))
		}
	}
}

// TestInterpolateDuplicateX verifies duplicate x coordinates are
// rejected
func TestInterpolateDuplicateX(t *testing.T) {
	field := mustField(t, 257)
	x := field.NewElementFromInt64(5)
	points := []*Point{
		NewPoint(x, field.NewElementFromInt64(1)),
		NewPoint(x, field.NewElementFromInt64(2)),
	}
	if _, err := Interpolate(points); err == nil {
		t.Error("Interpolate accepted duplicate x coordinates")
	}
}
