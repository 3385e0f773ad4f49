package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field represents a prime field with modular arithmetic operations.
// The modulus is injected at construction so the same code runs over
// small test primes and large STARK-friendly primes alike.
type Field struct {
	modulus *big.Int
	byteLen int
}

// FieldElement represents an element in a finite field. Elements are
// immutable; every operation returns a fresh element in canonical
// range [0, p).
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new prime field with the given modulus
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	m := new(big.Int).Set(modulus)
	return &Field{
		modulus: m,
		byteLen: len(m.Bytes()),
	}, nil
}

// NewFieldFromUint64 creates a new prime field with the given modulus
func NewFieldFromUint64(modulus uint64) (*Field, error) {
	return NewField(new(big.Int).SetUint64(modulus))
}

// Modulus returns the field modulus
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// ElementSize returns the byte width of the canonical element encoding
func (f *Field) ElementSize() int {
	return f.byteLen
}

// Equals checks whether two fields have the same modulus
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// NewElement creates a new field element from a big.Int, reducing it
// into canonical range
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{
		field: f,
		value: normalized,
	}
}

// NewElementFromInt64 creates a new field element from an int64
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates a new field element from a uint64
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// ElementFromBytes decodes a big-endian byte encoding into a field
// element, reducing it into canonical range
func (f *Field) ElementFromBytes(data []byte) *FieldElement {
	return f.NewElement(new(big.Int).SetBytes(data))
}

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// RandomElement generates a uniformly random field element
func (f *Field) RandomElement() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// RandomNonZeroElement generates a uniformly random nonzero field
// element. Callers picking coset offsets need the nonzero guarantee.
func (f *Field) RandomNonZeroElement() (*FieldElement, error) {
	for {
		elem, err := f.RandomElement()
		if err != nil {
			return nil, err
		}
		if !elem.IsZero() {
			return elem, nil
		}
	}
}

// Field returns the field this element belongs to
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Big returns the value as a big.Int
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Bytes returns the fixed-width big-endian encoding of the element.
// The width is the byte length of the field modulus, so every element
// of one field serializes to the same number of bytes.
func (fe *FieldElement) Bytes() []byte {
	return fe.value.FillBytes(make([]byte, fe.field.byteLen))
}

// IsZero reports whether the element is the additive identity
func (fe *FieldElement) IsZero() bool {
	return fe.value.Sign() == 0
}

// Equal reports whether two elements are the same field element
func (fe *FieldElement) Equal(other *FieldElement) bool {
	return fe.field.Equals(other.field) && fe.value.Cmp(other.value) == 0
}

// String returns the decimal representation of the element
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// Add performs field addition
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	result := new(big.Int).Add(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Sub performs field subtraction
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	result := new(big.Int).Sub(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Mul performs field multiplication
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	result := new(big.Int).Mul(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Neg returns the additive inverse of the field element
func (fe *FieldElement) Neg() *FieldElement {
	result := new(big.Int).Neg(fe.value)
	return fe.field.NewElement(result)
}

// Square returns the element multiplied by itself
func (fe *FieldElement) Square() *FieldElement {
	return fe.Mul(fe)
}

// Exp raises the element to a non-negative exponent
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	result := new(big.Int).Exp(fe.value, exponent, fe.field.modulus)
	return fe.field.NewElement(result)
}

// ExpUint64 raises the element to a non-negative uint64 exponent
func (fe *FieldElement) ExpUint64(exponent uint64) *FieldElement {
	return fe.Exp(new(big.Int).SetUint64(exponent))
}

// Inv computes the multiplicative inverse. Inverting the additive
// identity fails with ErrDivisionByZero.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.IsZero() {
		return nil, fmt.Errorf("cannot invert zero: %w", ErrDivisionByZero)
	}
	result := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if result == nil {
		return nil, fmt.Errorf("%s is not invertible modulo %s: %w",
			fe.value, fe.field.modulus, ErrDivisionByZero)
	}
	return fe.field.NewElement(result), nil
}

// Div performs field division via the multiplicative inverse
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot divide elements from different fields")
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return fe.Mul(inv), nil
}

// MultiplicativeOrder returns the order of the element in the
// multiplicative group, i.e. the smallest k > 0 with fe^k = 1.
// The search is bounded by maxOrder; 0 is returned when no order
// up to the bound divides out.
func (fe *FieldElement) MultiplicativeOrder(maxOrder uint64) uint64 {
	if fe.IsZero() {
		return 0
	}
	current := fe.field.One()
	for k := uint64(1); k <= maxOrder; k++ {
		current = current.Mul(fe)
		if current.Equal(fe.field.One()) {
			return k
		}
	}
	return 0
}
