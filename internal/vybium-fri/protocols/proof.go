package protocols

import (
	"encoding/json"
	"fmt"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
)

// LayerCommitment is the per-round record the verifier keeps: the
// commitment root and the order of the domain it was computed over.
type LayerCommitment struct {
	Root       []byte `json:"root"`
	DomainSize int    `json:"domain_size"`
}

// QueryRound records the two openings one folding round contributes to
// a query: the value at the queried index and the value at the paired
// index holding the negated domain point, each with its inclusion
// proof. Field elements travel as their fixed-width byte encoding.
type QueryRound struct {
	Index    int              `json:"index"`
	SymIndex int              `json:"sym_index"`
	Value    []byte           `json:"value"`
	SymValue []byte           `json:"sym_value"`
	Proof    []core.ProofNode `json:"proof"`
	SymProof []core.ProofNode `json:"sym_proof"`
}

// QueryProof is the full decommitment chain for one sampled position:
// one QueryRound per layer, from the initial domain down to the final
// polynomial's domain.
type QueryProof struct {
	InitialIndex int          `json:"initial_index"`
	Rounds       []QueryRound `json:"rounds"`
}

// Proof is the persisted artifact of one FRI session: the ordered
// layer commitments, the final polynomial's coefficients, and the
// decommitment records for every sampled query.
type Proof struct {
	Layers            []LayerCommitment `json:"layers"`
	FinalCoefficients [][]byte          `json:"final_coefficients"`
	Queries           []QueryProof      `json:"queries"`
	HashFunction      string            `json:"hash_function"`
	SelfSampled       bool              `json:"self_sampled"`
}

// FinalPolynomial reconstructs the final polynomial over the given
// field from the serialized coefficients
func (p *Proof) FinalPolynomial(field *core.Field) (*core.Polynomial, error) {
	if len(p.FinalCoefficients) == 0 {
		return nil, fmt.Errorf("proof carries no final polynomial: %w", ErrMalformedProof)
	}
	coeffs := make([]*core.FieldElement, len(p.FinalCoefficients))
	for i, raw := range p.FinalCoefficients {
		coeffs[i] = field.ElementFromBytes(raw)
	}
	return core.NewPolynomial(coeffs)
}

// NumRounds returns the number of folding rounds recorded in the
// proof, excluding the final layer
func (p *Proof) NumRounds() int {
	if len(p.Layers) == 0 {
		return 0
	}
	return len(p.Layers) - 1
}

// Marshal serializes the proof to JSON
func (p *Proof) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalProof deserializes a proof from JSON
func UnmarshalProof(data []byte) (*Proof, error) {
	var proof Proof
	if err := json.Unmarshal(data, &proof); err != nil {
		return nil, fmt.Errorf("failed to decode proof: %w", err)
	}
	return &proof, nil
}

// validateShape checks the structural consistency of the proof before
// any cryptographic verification: layer sizes must halve round by
// round and every query must span every layer.
func (p *Proof) validateShape() error {
	if len(p.Layers) == 0 {
		return fmt.Errorf("proof has no layers: %w", ErrMalformedProof)
	}
	for r := 1; r < len(p.Layers); r++ {
		if p.Layers[r].DomainSize*2 != p.Layers[r-1].DomainSize {
			return fmt.Errorf("layer %d domain size %d does not halve layer %d domain size %d: %w",
				r, p.Layers[r].DomainSize, r-1, p.Layers[r-1].DomainSize, ErrMalformedProof)
		}
	}
	for qi, query := range p.Queries {
		if len(query.Rounds) != len(p.Layers) {
			return fmt.Errorf("query %d spans %d rounds, expected %d: %w",
				qi, len(query.Rounds), len(p.Layers), ErrMalformedProof)
		}
	}
	if len(p.FinalCoefficients) == 0 {
		return fmt.Errorf("proof carries no final polynomial: %w", ErrMalformedProof)
	}
	return nil
}
