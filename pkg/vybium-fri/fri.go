package vybiumfri

import (
	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
	"github.com/vybium/vybium-fri/internal/vybium-fri/protocols"
	"github.com/vybium/vybium-fri/internal/vybium-fri/utils"
)

// Prover is the public interface for generating FRI proofs
type Prover interface {
	// Prove commits to the polynomial with the given coefficients
	// (index = power of x) and produces a complete proof
	Prove(coefficients []int64) (*Proof, error)
}

// proverImpl is the internal implementation of Prover
type proverImpl struct {
	config *Config
	field  *core.Field
}

// NewProver creates a prover with the given configuration
func NewProver(config *Config) (Prover, error) {
	if err := config.Validate(); err != nil {
		return nil, &FRIError{
			Code:    ErrInvalidConfig,
			Message: "invalid configuration",
			Cause:   err,
		}
	}

	field, err := config.Field()
	if err != nil {
		return nil, &FRIError{
			Code:    ErrFieldCreation,
			Message: "failed to create field",
			Cause:   err,
		}
	}

	return &proverImpl{
		config: config,
		field:  field,
	}, nil
}

// Prove runs a full FRI session over the polynomial
func (p *proverImpl) Prove(coefficients []int64) (*Proof, error) {
	poly, err := core.NewPolynomialFromInt64(p.field, coefficients)
	if err != nil {
		return nil, &FRIError{
			Code:    ErrInvalidPolynomial,
			Message: "invalid polynomial coefficients",
			Cause:   err,
		}
	}
	if poly.IsZero() {
		return nil, &FRIError{
			Code:    ErrInvalidPolynomial,
			Message: "cannot prove the zero polynomial",
		}
	}

	prover, err := protocols.NewProver(p.config)
	if err != nil {
		return nil, &FRIError{
			Code:    ErrProofGeneration,
			Message: "failed to create session prover",
			Cause:   err,
		}
	}

	channel := utils.NewChannel(p.config.HashFunction)
	proof, err := prover.Prove(poly, channel)
	if err != nil {
		return nil, &FRIError{
			Code:    ErrProofGeneration,
			Message: "proof generation failed",
			Cause:   err,
		}
	}
	return proof, nil
}

// Verify audits a FRI proof against the session configuration
func Verify(config *Config, proof *Proof) error {
	verifier, err := protocols.NewVerifier(config)
	if err != nil {
		return &FRIError{
			Code:    ErrInvalidConfig,
			Message: "invalid configuration",
			Cause:   err,
		}
	}
	if err := verifier.VerifySession(proof); err != nil {
		return &FRIError{
			Code:    ErrProofVerification,
			Message: "proof verification failed",
			Cause:   err,
		}
	}
	return nil
}
