package core

import (
	"errors"
	"testing"
)

// order8Generator returns the canonical generator of the order-8
// subgroup of F_257, derived from the primitive root 3
func order8Generator(t *testing.T, field *Field) *FieldElement {
	t.Helper()
	generator, err := SubgroupGenerator(field.NewElementFromInt64(3), 8)
	if err != nil {
		t.Fatalf("SubgroupGenerator failed: %v", err)
	}
	return generator
}

// TestNewDomainValidation tests constructor-time rejection of unsound
// domains
func TestNewDomainValidation(t *testing.T) {
	field := mustField(t, 257)
	g8 := order8Generator(t, field)

	tests := []struct {
		name      string
		generator *FieldElement
		offset    *FieldElement
		order     int
	}{
		{"order not power of two", g8, field.NewElementFromInt64(3), 6},
		{"order zero", g8, field.NewElementFromInt64(3), 0},
		{"order negative", g8, field.NewElementFromInt64(3), -8},
		{"zero offset", g8, field.Zero(), 8},
		{"generator order too small", field.NewElementFromInt64(1), field.NewElementFromInt64(3), 8},
		{"generator order too large", field.NewElementFromInt64(3), field.NewElementFromInt64(3), 8},
		{"generator order divides but not exact", g8, field.NewElementFromInt64(3), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomain(tt.generator, tt.offset, tt.order)
			if !errors.Is(err, ErrInvalidDomain) {
				t.Errorf("NewDomain error = %v, want ErrInvalidDomain", err)
			}
		})
	}
}

// TestDomainElements verifies the coset layout offset * g^i
func TestDomainElements(t *testing.T) {
	field := mustField(t, 257)
	g8 := order8Generator(t, field)
	offset := field.NewElementFromInt64(3)

	domain, err := NewDomain(g8, offset, 8)
	if err != nil {
		t.Fatalf("NewDomain failed: %v", err)
	}

	if domain.Order() != 8 {
		t.Fatalf("Order() = %d, want 8", domain.Order())
	}

	expected := offset
	for i := 0; i < 8; i++ {
		elem, err := domain.ElementAt(i)
		if err != nil {
			t.Fatalf("ElementAt(%d) failed: %v", i, err)
		}
		if !elem.Equal(expected) {
			t.Errorf("ElementAt(%d) = %s, want %s", i, elem, expected)
		}
		expected = expected.Mul(g8)
	}

	if _, err := domain.ElementAt(8); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ElementAt(8) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := domain.ElementAt(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ElementAt(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

// TestDomainSymmetry verifies the negation pairing required by
// folding: the element at i + n/2 is the negation of the element at i,
// for nontrivial coset offsets included
func TestDomainSymmetry(t *testing.T) {
	field := mustField(t, 257)
	g8 := order8Generator(t, field)

	for _, offset := range []int64{1, 3, 7, 100} {
		domain, err := NewDomain(g8, field.NewElementFromInt64(offset), 8)
		if err != nil {
			t.Fatalf("NewDomain(offset=%d) failed: %v", offset, err)
		}

		n := domain.Order()
		for i := 0; i < n/2; i++ {
			a, _ := domain.ElementAt(i)
			b, _ := domain.ElementAt(i + n/2)
			if !b.Equal(a.Neg()) {
				t.Errorf("offset %d: element at %d is %s, want -%s", offset, i+n/2, b, a)
			}

			paired, err := domain.PairedIndex(i)
			if err != nil {
				t.Fatalf("PairedIndex(%d) failed: %v", i, err)
			}
			if paired != i+n/2 {
				t.Errorf("PairedIndex(%d) = %d, want %d", i, paired, i+n/2)
			}
		}
	}
}

// TestSquaredDomain verifies Square halves the order and maps every
// pair {x, -x} onto exactly one element of the squared domain
func TestSquaredDomain(t *testing.T) {
	field := mustField(t, 257)
	g8 := order8Generator(t, field)

	domain, err := NewDomain(g8, field.NewElementFromInt64(3), 8)
	if err != nil {
		t.Fatalf("NewDomain failed: %v", err)
	}

	squared, err := domain.Square()
	if err != nil {
		t.Fatalf("Square failed: %v", err)
	}

	if squared.Order() != 4 {
		t.Fatalf("squared order = %d, want 4", squared.Order())
	}
	if !squared.Generator().Equal(domain.Generator().Square()) {
		t.Error("squared domain generator is not the square of the generator")
	}
	if !squared.Offset().Equal(domain.Offset().Square()) {
		t.Error("squared domain offset is not the square of the offset")
	}

	// Every element of D squared lands in D.Square(), two preimages
	// per image
	preimages := make(map[string]int)
	for _, elem := range domain.Elements() {
		square := elem.Square()
		if _, ok := squared.Contains(square); !ok {
			t.Errorf("%s^2 = %s is not in the squared domain", elem, square)
		}
		preimages[square.String()]++
	}
	if len(preimages) != squared.Order() {
		t.Errorf("squares cover %d elements, want %d", len(preimages), squared.Order())
	}
	for square, count := range preimages {
		if count != 2 {
			t.Errorf("element %s has %d preimages, want 2", square, count)
		}
	}

	// The index map i -> i mod n/2 is consistent with squaring
	for i := 0; i < domain.Order(); i++ {
		elem, _ := domain.ElementAt(i)
		mapped, _ := squared.ElementAt(i % squared.Order())
		if !elem.Square().Equal(mapped) {
			t.Errorf("element at %d squared is %s, squared domain at %d holds %s",
				i, elem.Square(), i%squared.Order(), mapped)
		}
	}
}

// TestSquareChain verifies repeated squaring down to a singleton
// domain
func TestSquareChain(t *testing.T) {
	field := mustField(t, 257)
	g8 := order8Generator(t, field)

	domain, err := NewDomain(g8, field.NewElementFromInt64(3), 8)
	if err != nil {
		t.Fatalf("NewDomain failed: %v", err)
	}

	for want := 4; want >= 1; want /= 2 {
		domain, err = domain.Square()
		if err != nil {
			t.Fatalf("Square to order %d failed: %v", want, err)
		}
		if domain.Order() != want {
			t.Fatalf("squared order = %d, want %d", domain.Order(), want)
		}
	}

	if _, err := domain.Square(); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("Square of singleton domain error = %v, want ErrInvalidDomain", err)
	}
}

// TestSubgroupGenerator tests generator derivation from a primitive
// root
func TestSubgroupGenerator(t *testing.T) {
	field := mustField(t, 257)
	root := field.NewElementFromInt64(3)

	for _, order := range []int{1, 2, 4, 8, 16, 256} {
		generator, err := SubgroupGenerator(root, order)
		if err != nil {
			t.Fatalf("SubgroupGenerator(order=%d) failed: %v", order, err)
		}
		if got := generator.MultiplicativeOrder(uint64(order)); got != uint64(order) {
			t.Errorf("generator for order %d has order %d", order, got)
		}
	}

	if _, err := SubgroupGenerator(root, 512); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("SubgroupGenerator(512) error = %v, want ErrInvalidDomain", err)
	}
	if _, err := SubgroupGenerator(root, 6); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("SubgroupGenerator(6) error = %v, want ErrInvalidDomain", err)
	}
}
