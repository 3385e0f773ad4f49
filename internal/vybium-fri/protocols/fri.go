package protocols

import (
	"fmt"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
	"github.com/vybium/vybium-fri/internal/vybium-fri/logger"
	"github.com/vybium/vybium-fri/internal/vybium-fri/utils"
)

// Layer holds one committed FRI round: the commitment over the round's
// domain. The prover owns every layer for the lifetime of the session.
type Layer struct {
	Commitment *Commitment
}

// Prover runs the commit phase of the FRI low-degree test and answers
// decommitment queries against the layers it committed. One prover
// instance serves exactly one proof session.
type Prover struct {
	cfg   *utils.Config
	field *core.Field

	layers    []*Layer
	finalPoly *core.Polynomial
}

// NewProver creates a prover for one FRI session
func NewProver(cfg *utils.Config) (*Prover, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	field, err := cfg.Field()
	if err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return &Prover{
		cfg:   cfg,
		field: field,
	}, nil
}

// Field returns the field the prover operates over
func (p *Prover) Field() *core.Field {
	return p.field
}

// Layers returns the committed layers of the current session
func (p *Prover) Layers() []*Layer {
	return p.layers
}

// FinalPolynomial returns the final low-degree polynomial, or nil if
// the commit phase has not run
func (p *Prover) FinalPolynomial() *core.Polynomial {
	return p.finalPoly
}

// CommitPhase runs the commit/fold loop: evaluate the polynomial over
// the domain, commit, publish the root to the channel, derive the
// folding challenge, fold the polynomial and square the domain, until
// the degree is at or below the configured final degree. The final
// polynomial is committed one last time so queries can audit it.
//
// Folding halves the degree each round, so the loop must terminate
// within log2(domain order) rounds; exceeding that bound surfaces
// ErrDegreeNotReduced.
func (p *Prover) CommitPhase(poly *core.Polynomial, domain *core.Domain, channel *utils.Channel) error {
	if poly == nil || poly.IsZero() {
		return fmt.Errorf("cannot run the commit phase on the zero polynomial")
	}
	if poly.Degree() >= domain.Order() {
		return fmt.Errorf("polynomial degree %d is not below domain order %d",
			poly.Degree(), domain.Order())
	}

	log := logger.Logger()

	p.layers = nil
	p.finalPoly = nil

	maxRounds := utils.Log2(domain.Order())
	currentPoly := poly
	currentDomain := domain

	round := 0
	for currentPoly.Degree() > p.cfg.FinalDegree {
		if round >= maxRounds {
			return fmt.Errorf("degree %d after %d rounds: %w",
				currentPoly.Degree(), round, ErrDegreeNotReduced)
		}

		commitment, err := p.commitLayer(currentPoly, currentDomain)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		channel.ObserveCommitment(commitment.Root())
		beta := channel.DeriveBeta(p.field)

		log.Debug().
			Int("round", round).
			Int("degree", currentPoly.Degree()).
			Int("domain_order", currentDomain.Order()).
			Str("beta", beta.String()).
			Msg("committed layer, folding")

		currentPoly, err = currentPoly.Fold(beta)
		if err != nil {
			return fmt.Errorf("round %d fold failed: %w", round, err)
		}
		currentDomain, err = currentDomain.Square()
		if err != nil {
			return fmt.Errorf("round %d domain squaring failed: %w", round, err)
		}
		round++
	}

	// Final layer: commit the terminal polynomial's evaluations and
	// keep its coefficients, which the verifier checks directly
	// against the degree bound.
	commitment, err := p.commitLayer(currentPoly, currentDomain)
	if err != nil {
		return fmt.Errorf("final round: %w", err)
	}
	channel.ObserveCommitment(commitment.Root())
	p.finalPoly = currentPoly

	log.Debug().
		Int("rounds", round).
		Int("final_degree", currentPoly.Degree()).
		Msg("commit phase finished")

	return nil
}

func (p *Prover) commitLayer(poly *core.Polynomial, domain *core.Domain) (*Commitment, error) {
	evaluations := poly.EvalDomain(domain)
	commitment, err := Commit(domain, evaluations, p.cfg.HashFunction)
	if err != nil {
		return nil, err
	}
	p.layers = append(p.layers, &Layer{Commitment: commitment})
	return commitment, nil
}

// Decommit produces the evaluation-consistency chain for every sampled
// query index: per layer, the openings at the queried index and at the
// paired index holding the negated domain point. The index into the
// next layer is the current index reduced modulo the halved order.
func (p *Prover) Decommit(queries []int) ([]QueryProof, error) {
	if len(p.layers) == 0 {
		return nil, fmt.Errorf("commit phase has not run")
	}

	initialOrder := p.layers[0].Commitment.Domain().Order()
	queryProofs := make([]QueryProof, 0, len(queries))

	for _, initialIndex := range queries {
		if initialIndex < 0 || initialIndex >= initialOrder {
			return nil, fmt.Errorf("query index %d outside initial domain of order %d: %w",
				initialIndex, initialOrder, core.ErrIndexOutOfRange)
		}

		rounds := make([]QueryRound, 0, len(p.layers))
		index := initialIndex

		for _, layer := range p.layers {
			domain := layer.Commitment.Domain()
			n := domain.Order()

			index = index % n
			symIndex, err := domain.PairedIndex(index)
			if err != nil {
				return nil, err
			}

			value, proof, err := layer.Commitment.Open(index)
			if err != nil {
				return nil, fmt.Errorf("opening index %d: %w", index, err)
			}
			symValue, symProof, err := layer.Commitment.Open(symIndex)
			if err != nil {
				return nil, fmt.Errorf("opening paired index %d: %w", symIndex, err)
			}

			rounds = append(rounds, QueryRound{
				Index:    index,
				SymIndex: symIndex,
				Value:    value.Bytes(),
				SymValue: symValue.Bytes(),
				Proof:    proof,
				SymProof: symProof,
			})
		}

		queryProofs = append(queryProofs, QueryProof{
			InitialIndex: initialIndex,
			Rounds:       rounds,
		})
	}

	return queryProofs, nil
}

// Prove runs a complete proof session: commit phase, query sampling
// through the channel, and decommitment, assembling the persisted
// proof artifact.
func (p *Prover) Prove(poly *core.Polynomial, channel *utils.Channel) (*Proof, error) {
	domain, err := p.cfg.EvaluationDomain(p.field, poly.Degree())
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation domain: %w", err)
	}

	if err := p.CommitPhase(poly, domain, channel); err != nil {
		return nil, err
	}

	queries, err := channel.SampleQueryIndices(p.cfg.NumQueries, domain.Order())
	if err != nil {
		return nil, fmt.Errorf("failed to sample query indices: %w", err)
	}

	queryProofs, err := p.Decommit(queries)
	if err != nil {
		return nil, err
	}

	layers := make([]LayerCommitment, len(p.layers))
	for i, layer := range p.layers {
		layers[i] = LayerCommitment{
			Root:       layer.Commitment.Root(),
			DomainSize: layer.Commitment.Domain().Order(),
		}
	}

	finalCoeffs := p.finalPoly.Coefficients()
	rawCoeffs := make([][]byte, len(finalCoeffs))
	for i, coeff := range finalCoeffs {
		rawCoeffs[i] = coeff.Bytes()
	}

	return &Proof{
		Layers:            layers,
		FinalCoefficients: rawCoeffs,
		Queries:           queryProofs,
		HashFunction:      p.cfg.HashFunction,
		SelfSampled:       channel.SelfSampling(),
	}, nil
}
