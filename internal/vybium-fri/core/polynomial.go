package core

import (
	"fmt"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Polynomial represents a dense univariate polynomial with
// coefficients in a prime field. The coefficient at index i is the
// coefficient of x^i. Leading zeros are trimmed at construction, so
// the degree is always len(coefficients)-1 except for the zero
// polynomial, which is stored as a single zero coefficient.
type Polynomial struct {
	coefficients []*FieldElement
	field        *Field
}

// NewPolynomial creates a new polynomial from field elements
func NewPolynomial(coefficients []*FieldElement) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("polynomial must have at least one coefficient")
	}

	field := coefficients[0].Field()
	for i, coeff := range coefficients {
		if !coeff.Field().Equals(field) {
			return nil, fmt.Errorf("coefficient %d is from a different field", i)
		}
	}

	// Remove leading zeros
	trimmed := []*FieldElement{field.Zero()}
	for i := len(coefficients) - 1; i >= 0; i-- {
		if !coefficients[i].IsZero() {
			trimmed = coefficients[:i+1]
			break
		}
	}

	return &Polynomial{
		coefficients: trimmed,
		field:        field,
	}, nil
}

// NewPolynomialFromInt64 creates a polynomial from int64 coefficients
func NewPolynomialFromInt64(field *Field, coefficients []int64) (*Polynomial, error) {
	fieldCoeffs := make([]*FieldElement, len(coefficients))
	for i, coeff := range coefficients {
		fieldCoeffs[i] = field.NewElementFromInt64(coeff)
	}
	return NewPolynomial(fieldCoeffs)
}

// NewPolynomialFromBigInt creates a polynomial from big.Int coefficients
func NewPolynomialFromBigInt(field *Field, coefficients []*big.Int) (*Polynomial, error) {
	fieldCoeffs := make([]*FieldElement, len(coefficients))
	for i, coeff := range coefficients {
		fieldCoeffs[i] = field.NewElement(coeff)
	}
	return NewPolynomial(fieldCoeffs)
}

// Degree returns the degree of the polynomial, or -1 for the zero
// polynomial
func (p *Polynomial) Degree() int {
	if len(p.coefficients) == 1 && p.coefficients[0].IsZero() {
		return -1
	}
	return len(p.coefficients) - 1
}

// IsZero reports whether this is the zero polynomial
func (p *Polynomial) IsZero() bool {
	return p.Degree() == -1
}

// Field returns the field the polynomial is defined over
func (p *Polynomial) Field() *Field {
	return p.field
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial) Coefficient(degree int) *FieldElement {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// Coefficients returns a copy of the polynomial coefficients
func (p *Polynomial) Coefficients() []*FieldElement {
	coeffs := make([]*FieldElement, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// Eval evaluates the polynomial at the given point using Horner's
// method
func (p *Polynomial) Eval(point *FieldElement) *FieldElement {
	if !point.Field().Equals(p.field) {
		panic("cannot evaluate polynomial at point from different field")
	}

	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// EvalDomain evaluates the polynomial over every element of the
// domain, in domain order. Evaluations at distinct indices are
// independent, so the work is split across workers.
func (p *Polynomial) EvalDomain(domain *Domain) []*FieldElement {
	elements := domain.Elements()
	results := make([]*FieldElement, len(elements))

	workers := runtime.NumCPU()
	if workers > len(elements) {
		workers = len(elements)
	}
	if workers < 1 {
		workers = 1
	}

	var group errgroup.Group
	chunk := (len(elements) + workers - 1) / workers
	for start := 0; start < len(elements); start += chunk {
		end := start + chunk
		if end > len(elements) {
			end = len(elements)
		}
		start := start // pre-go1.22 loop semantics: rebind per iteration
		group.Go(func() error {
			for i := start; i < end; i++ {
				results[i] = p.Eval(elements[i])
			}
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = group.Wait()

	return results
}

// Add returns the sum of two polynomials
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot add polynomials over different fields")
	}

	size := len(p.coefficients)
	if len(other.coefficients) > size {
		size = len(other.coefficients)
	}

	sum := make([]*FieldElement, size)
	for i := range sum {
		sum[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}
	return NewPolynomial(sum)
}

// MulScalar returns the polynomial with every coefficient multiplied
// by the scalar
func (p *Polynomial) MulScalar(scalar *FieldElement) (*Polynomial, error) {
	scaled := make([]*FieldElement, len(p.coefficients))
	for i, coeff := range p.coefficients {
		scaled[i] = coeff.Mul(scalar)
	}
	return NewPolynomial(scaled)
}

// DecomposeEvenOdd splits the polynomial into its even-index and
// odd-index coefficient halves, returning (even, odd) such that
//
//	p(x) = even(x^2) + x * odd(x^2)
//
// This decomposition is the algebraic basis of FRI folding.
func (p *Polynomial) DecomposeEvenOdd() (*Polynomial, *Polynomial, error) {
	var evenCoeffs, oddCoeffs []*FieldElement
	for i, coeff := range p.coefficients {
		if i%2 == 0 {
			evenCoeffs = append(evenCoeffs, coeff)
		} else {
			oddCoeffs = append(oddCoeffs, coeff)
		}
	}
	if len(oddCoeffs) == 0 {
		oddCoeffs = []*FieldElement{p.field.Zero()}
	}

	even, err := NewPolynomial(evenCoeffs)
	if err != nil {
		return nil, nil, err
	}
	odd, err := NewPolynomial(oddCoeffs)
	if err != nil {
		return nil, nil, err
	}
	return even, odd, nil
}

// Fold combines the even and odd halves of the polynomial with the
// challenge beta, returning even + beta*odd as a fresh polynomial of
// at most half the original degree. The receiver is never mutated.
func (p *Polynomial) Fold(beta *FieldElement) (*Polynomial, error) {
	if !beta.Field().Equals(p.field) {
		return nil, fmt.Errorf("folding challenge is from a different field")
	}

	even, odd, err := p.DecomposeEvenOdd()
	if err != nil {
		return nil, fmt.Errorf("even/odd decomposition failed: %w", err)
	}

	scaledOdd, err := odd.MulScalar(beta)
	if err != nil {
		return nil, fmt.Errorf("scaling odd part failed: %w", err)
	}

	folded, err := even.Add(scaledOdd)
	if err != nil {
		return nil, fmt.Errorf("combining folded halves failed: %w", err)
	}
	return folded, nil
}

// Interpolate constructs the unique polynomial of degree < len(points)
// passing through all given points, using Lagrange interpolation.
// Fails if two points share an x coordinate.
func Interpolate(points []*Point) (*Polynomial, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("interpolation requires at least one point")
	}

	field := points[0].X.Field()
	result, err := NewPolynomial([]*FieldElement{field.Zero()})
	if err != nil {
		return nil, err
	}

	for i, pi := range points {
		// Build the i-th Lagrange basis polynomial scaled by y_i
		basis, err := NewPolynomial([]*FieldElement{pi.Y})
		if err != nil {
			return nil, err
		}

		for j, pj := range points {
			if i == j {
				continue
			}
			denom := pi.X.Sub(pj.X)
			denomInv, err := denom.Inv()
			if err != nil {
				return nil, fmt.Errorf("duplicate x coordinate at points %d and %d: %w", i, j, err)
			}
			// basis *= (x - x_j) / (x_i - x_j)
			linear, err := NewPolynomial([]*FieldElement{
				pj.X.Neg().Mul(denomInv),
				denomInv,
			})
			if err != nil {
				return nil, err
			}
			basis, err = basis.Mul(linear)
			if err != nil {
				return nil, err
			}
		}

		result, err = result.Add(basis)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Mul returns the product of two polynomials
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot multiply polynomials over different fields")
	}

	product := make([]*FieldElement, len(p.coefficients)+len(other.coefficients)-1)
	for i := range product {
		product[i] = p.field.Zero()
	}
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] = product[i+j].Add(a.Mul(b))
		}
	}
	return NewPolynomial(product)
}

// Point represents an (x, y) pair for polynomial interpolation
type Point struct {
	X *FieldElement
	Y *FieldElement
}

// NewPoint creates a new interpolation point
func NewPoint(x, y *FieldElement) *Point {
	return &Point{X: x, Y: y}
}

// String returns a readable representation of the polynomial
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	out := ""
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		coeff := p.coefficients[i]
		if coeff.IsZero() {
			continue
		}
		if out != "" {
			out += " + "
		}
		switch i {
		case 0:
			out += coeff.String()
		case 1:
			out += fmt.Sprintf("%s*x", coeff)
		default:
			out += fmt.Sprintf("%s*x^%d", coeff, i)
		}
	}
	return out
}
