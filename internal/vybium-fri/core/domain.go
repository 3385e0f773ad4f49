package core

import (
	"fmt"
	"math/big"
)

// Domain is an evaluation domain: the coset {offset * g^i : i in [0, n)}
// of a multiplicative subgroup of order n, where n is a power of two.
//
// The folding protocol relies on the domain being symmetric under
// negation: the element at index i + n/2 must equal the negation of
// the element at index i. For a coset this holds exactly when g has
// exact order n, because then g^(n/2) is the unique element of order
// two, which in a prime field is -1. The constructor validates this
// instead of letting an asymmetric domain silently unsound the
// protocol.
type Domain struct {
	field     *Field
	generator *FieldElement
	offset    *FieldElement
	elements  []*FieldElement
}

// NewDomain creates the coset domain {offset * generator^i} of the
// given order. It fails with ErrInvalidDomain if the order is not a
// power of two, the generator does not have exactly that order, the
// offset is zero, or the negation symmetry required by folding does
// not hold.
func NewDomain(generator, offset *FieldElement, order int) (*Domain, error) {
	if order <= 0 || order&(order-1) != 0 {
		return nil, fmt.Errorf("order %d is not a power of two: %w", order, ErrInvalidDomain)
	}
	if !generator.Field().Equals(offset.Field()) {
		return nil, fmt.Errorf("generator and offset are from different fields: %w", ErrInvalidDomain)
	}
	if offset.IsZero() {
		return nil, fmt.Errorf("coset offset is zero: %w", ErrInvalidDomain)
	}

	field := generator.Field()

	// The generator must have exact order n, not merely divide it.
	if !generator.ExpUint64(uint64(order)).Equal(field.One()) {
		return nil, fmt.Errorf("generator order does not divide %d: %w", order, ErrInvalidDomain)
	}
	if order > 1 && generator.ExpUint64(uint64(order/2)).Equal(field.One()) {
		return nil, fmt.Errorf("generator order is smaller than %d: %w", order, ErrInvalidDomain)
	}

	// Negation symmetry: g^(n/2) must be -1 so that index i + n/2
	// holds the negation of index i for every coset offset.
	if order > 1 {
		minusOne := field.One().Neg()
		if !generator.ExpUint64(uint64(order/2)).Equal(minusOne) {
			return nil, fmt.Errorf("domain is not symmetric under negation: %w", ErrInvalidDomain)
		}
	}

	elements := make([]*FieldElement, order)
	current := offset
	for i := 0; i < order; i++ {
		elements[i] = current
		current = current.Mul(generator)
	}

	return &Domain{
		field:     field,
		generator: generator,
		offset:    offset,
		elements:  elements,
	}, nil
}

// NewDomainFromUint64 is a convenience constructor for tests and small
// parameter sets
func NewDomainFromUint64(field *Field, generator, offset uint64, order int) (*Domain, error) {
	return NewDomain(field.NewElementFromUint64(generator), field.NewElementFromUint64(offset), order)
}

// Field returns the field the domain lives in
func (d *Domain) Field() *Field {
	return d.field
}

// Order returns the number of elements in the domain
func (d *Domain) Order() int {
	return len(d.elements)
}

// Generator returns the subgroup generator
func (d *Domain) Generator() *FieldElement {
	return d.generator
}

// Offset returns the coset offset
func (d *Domain) Offset() *FieldElement {
	return d.offset
}

// Elements returns a copy of the ordered domain elements
func (d *Domain) Elements() []*FieldElement {
	elements := make([]*FieldElement, len(d.elements))
	copy(elements, d.elements)
	return elements
}

// ElementAt returns the domain element at the given index
func (d *Domain) ElementAt(index int) (*FieldElement, error) {
	if index < 0 || index >= len(d.elements) {
		return nil, fmt.Errorf("index %d outside domain of order %d: %w",
			index, len(d.elements), ErrIndexOutOfRange)
	}
	return d.elements[index], nil
}

// PairedIndex returns the index holding the negation of the element at
// the given index. The pair {x, -x} is what one folding step consumes.
func (d *Domain) PairedIndex(index int) (int, error) {
	n := len(d.elements)
	if index < 0 || index >= n {
		return 0, fmt.Errorf("index %d outside domain of order %d: %w", index, n, ErrIndexOutOfRange)
	}
	return (index + n/2) % n, nil
}

// Square returns the domain induced for the next folding round: order
// halved, generator squared, offset squared. Every pair {x, -x} of the
// receiver maps to the single element x^2 of the squared domain.
func (d *Domain) Square() (*Domain, error) {
	n := len(d.elements)
	if n < 2 {
		return nil, fmt.Errorf("domain of order %d cannot be squared: %w", n, ErrInvalidDomain)
	}
	return NewDomain(d.generator.Square(), d.offset.Square(), n/2)
}

// Contains reports whether the point is an element of the domain, and
// at which index
func (d *Domain) Contains(point *FieldElement) (int, bool) {
	for i, elem := range d.elements {
		if elem.Equal(point) {
			return i, true
		}
	}
	return -1, false
}

// SubgroupGenerator derives a generator of the order-n subgroup of the
// field's multiplicative group from a primitive root, as
// root^((p-1)/n). It fails with ErrInvalidDomain when n does not
// divide p-1 or the derived element does not have exact order n.
func SubgroupGenerator(root *FieldElement, order int) (*FieldElement, error) {
	if order <= 0 || order&(order-1) != 0 {
		return nil, fmt.Errorf("subgroup order %d is not a power of two: %w", order, ErrInvalidDomain)
	}

	field := root.Field()
	groupOrder := new(big.Int).Sub(field.Modulus(), big.NewInt(1))
	n := big.NewInt(int64(order))
	if new(big.Int).Mod(groupOrder, n).Sign() != 0 {
		return nil, fmt.Errorf("no subgroup of order %d exists: %w", order, ErrInvalidDomain)
	}

	generator := root.Exp(new(big.Int).Div(groupOrder, n))
	if order > 1 && generator.ExpUint64(uint64(order/2)).Equal(field.One()) {
		return nil, fmt.Errorf("root does not generate a subgroup of order %d: %w", order, ErrInvalidDomain)
	}
	return generator, nil
}
