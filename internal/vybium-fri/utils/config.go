package utils

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
)

// Config represents the parameters of one FRI session. The field is
// injected here rather than baked into the arithmetic, so tests can
// run the same protocol over small primes.
type Config struct {
	// Field parameters
	FieldModulus  *big.Int // prime modulus, assumed prime upstream
	PrimitiveRoot *big.Int // generator of the full multiplicative group
	TwoAdicity    int      // largest k such that 2^k divides p-1

	// Domain parameters
	CosetOffset  *big.Int // nonzero coset offset for the evaluation domain
	BlowupFactor int      // evaluation domain size per polynomial coefficient

	// Protocol parameters
	FinalDegree int // folding stops once the degree is at or below this
	NumQueries  int // number of decommitment queries

	// Hash function for the channel and the Merkle commitments:
	// "sha256" or "sha3"
	HashFunction string
}

// DefaultConfig returns a configuration over the STARK-friendly prime
// 3221225473 = 3*2^30 + 1, whose multiplicative group is generated
// by 5
func DefaultConfig() *Config {
	return &Config{
		FieldModulus:  big.NewInt(3221225473),
		PrimitiveRoot: big.NewInt(5),
		TwoAdicity:    30,
		CosetOffset:   big.NewInt(5),
		BlowupFactor:  8,
		FinalDegree:   0,
		NumQueries:    3,
		HashFunction:  "sha3",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FieldModulus == nil || c.FieldModulus.Cmp(big.NewInt(2)) <= 0 {
		return fmt.Errorf("field modulus must be greater than 2")
	}

	if c.PrimitiveRoot == nil || c.PrimitiveRoot.Sign() == 0 {
		return fmt.Errorf("primitive root must be nonzero")
	}

	if c.TwoAdicity <= 0 {
		return fmt.Errorf("two-adicity must be positive")
	}

	groupOrder := new(big.Int).Sub(c.FieldModulus, big.NewInt(1))
	adic := new(big.Int).Lsh(big.NewInt(1), uint(c.TwoAdicity))
	if new(big.Int).Mod(groupOrder, adic).Sign() != 0 {
		return fmt.Errorf("2^%d does not divide the group order %s", c.TwoAdicity, groupOrder)
	}

	if c.CosetOffset == nil || new(big.Int).Mod(c.CosetOffset, c.FieldModulus).Sign() == 0 {
		return fmt.Errorf("coset offset must be nonzero in the field")
	}

	if c.BlowupFactor < 2 || !IsPowerOfTwo(c.BlowupFactor) {
		return fmt.Errorf("blowup factor must be a power of two >= 2")
	}

	if c.FinalDegree < 0 {
		return fmt.Errorf("final degree must be non-negative")
	}

	if c.NumQueries <= 0 {
		return fmt.Errorf("number of queries must be positive")
	}

	switch c.HashFunction {
	case "sha256", "sha3":
	default:
		return fmt.Errorf("unsupported hash function %q", c.HashFunction)
	}

	return nil
}

// Field constructs the prime field described by the configuration
func (c *Config) Field() (*core.Field, error) {
	return core.NewField(c.FieldModulus)
}

// SubgroupGenerator derives the generator of the order-n subgroup from
// the configured primitive root
func (c *Config) SubgroupGenerator(field *core.Field, order int) (*core.FieldElement, error) {
	if Log2(order) > c.TwoAdicity {
		return nil, fmt.Errorf("subgroup order %d exceeds the field's two-adicity 2^%d: %w",
			order, c.TwoAdicity, core.ErrInvalidDomain)
	}
	return core.SubgroupGenerator(field.NewElement(c.PrimitiveRoot), order)
}

// EvaluationDomain builds the round-0 coset domain for a polynomial of
// the given degree: the smallest power-of-two order holding
// BlowupFactor evaluations per coefficient.
func (c *Config) EvaluationDomain(field *core.Field, degree int) (*core.Domain, error) {
	if degree < 0 {
		return nil, fmt.Errorf("cannot build an evaluation domain for the zero polynomial")
	}

	order := NextPowerOfTwo(c.BlowupFactor * (degree + 1))
	generator, err := c.SubgroupGenerator(field, order)
	if err != nil {
		return nil, err
	}
	return core.NewDomain(generator, field.NewElement(c.CosetOffset), order)
}
