package protocols

import (
	"fmt"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
	"github.com/vybium/vybium-fri/internal/vybium-fri/logger"
	"github.com/vybium/vybium-fri/internal/vybium-fri/utils"
)

// Verifier audits a FRI proof: it replays the transcript to re-derive
// the folding challenges and query positions, then checks every
// decommitment chain against the committed roots and the folding
// relation.
type Verifier struct {
	cfg   *utils.Config
	field *core.Field
}

// NewVerifier creates a verifier bound to the same configuration the
// prover used
func NewVerifier(cfg *utils.Config) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	field, err := cfg.Field()
	if err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return &Verifier{
		cfg:   cfg,
		field: field,
	}, nil
}

// VerifySession checks a full proof session, short-circuiting on the
// first failing query. A nil return means the session verified.
func (v *Verifier) VerifySession(proof *Proof) error {
	session, err := v.prepareSession(proof)
	if err != nil {
		return err
	}

	for qi := range proof.Queries {
		if err := v.verifyQuery(proof, session, &proof.Queries[qi]); err != nil {
			return fmt.Errorf("query %d (index %d): %w",
				qi, proof.Queries[qi].InitialIndex, err)
		}
	}

	log := logger.Logger()
	log.Debug().
		Int("queries", len(proof.Queries)).
		Int("layers", len(proof.Layers)).
		Msg("session verified")

	return nil
}

// VerifySessionReport checks every query even after failures and
// returns all failing queries, keyed by their position in the proof.
// An empty map means the session verified.
func (v *Verifier) VerifySessionReport(proof *Proof) (map[int]error, error) {
	session, err := v.prepareSession(proof)
	if err != nil {
		return nil, err
	}

	failures := make(map[int]error)
	for qi := range proof.Queries {
		if err := v.verifyQuery(proof, session, &proof.Queries[qi]); err != nil {
			failures[qi] = err
		}
	}
	return failures, nil
}

// session carries the verifier state reconstructed from the proof:
// the per-layer domains, the re-derived folding challenges, and the
// final polynomial.
type session struct {
	domains   []*core.Domain
	betas     []*core.FieldElement
	finalPoly *core.Polynomial
	twoInv    *core.FieldElement
}

// prepareSession validates the proof's shape, rebuilds the per-layer
// domains from the configuration, and replays the transcript to
// re-derive every challenge the prover consumed.
func (v *Verifier) prepareSession(proof *Proof) (*session, error) {
	if err := proof.validateShape(); err != nil {
		return nil, err
	}

	// Rebuild the per-layer domains from the configured coset.
	initialOrder := proof.Layers[0].DomainSize
	generator, err := v.cfg.SubgroupGenerator(v.field, initialOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to derive the initial domain generator: %w", err)
	}
	domain, err := core.NewDomain(generator, v.field.NewElement(v.cfg.CosetOffset), initialOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild the initial domain: %w", err)
	}

	domains := make([]*core.Domain, len(proof.Layers))
	domains[0] = domain
	for r := 1; r < len(proof.Layers); r++ {
		domain, err = domain.Square()
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild the layer %d domain: %w", r, err)
		}
		domains[r] = domain
	}

	// Replay the transcript: one challenge per folding round, then
	// the final commitment observation.
	channel := utils.NewChannel(proof.HashFunction)
	betas := make([]*core.FieldElement, proof.NumRounds())
	for r := 0; r < proof.NumRounds(); r++ {
		channel.ObserveCommitment(proof.Layers[r].Root)
		betas[r] = channel.DeriveBeta(v.field)
	}
	channel.ObserveCommitment(proof.Layers[len(proof.Layers)-1].Root)

	// In transcript mode the query positions are bound to the
	// transcript; recompute them and require an exact match.
	if !proof.SelfSampled {
		if len(proof.Queries) != v.cfg.NumQueries {
			return nil, fmt.Errorf("proof carries %d queries, configuration requires %d: %w",
				len(proof.Queries), v.cfg.NumQueries, ErrMalformedProof)
		}
		expected, err := channel.SampleQueryIndices(len(proof.Queries), initialOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to re-derive query indices: %w", err)
		}
		for qi, query := range proof.Queries {
			if query.InitialIndex != expected[qi] {
				return nil, fmt.Errorf("query %d has index %d, transcript dictates %d: %w",
					qi, query.InitialIndex, expected[qi], ErrQueryIndicesMismatch)
			}
		}
	}

	finalPoly, err := proof.FinalPolynomial(v.field)
	if err != nil {
		return nil, err
	}
	if finalPoly.Degree() > v.cfg.FinalDegree {
		return nil, fmt.Errorf("final polynomial has degree %d, bound is %d: %w",
			finalPoly.Degree(), v.cfg.FinalDegree, ErrDegreeNotReduced)
	}

	twoInv, err := v.field.NewElementFromInt64(2).Inv()
	if err != nil {
		return nil, fmt.Errorf("field of characteristic 2 is not supported: %w", err)
	}

	return &session{
		domains:   domains,
		betas:     betas,
		finalPoly: finalPoly,
		twoInv:    twoInv,
	}, nil
}

// verifyQuery audits one decommitment chain. The folding relation is
// checked before the inclusion proofs so that a tampered value is
// reported as the algebraic inconsistency it causes; a tampered path
// with intact values still fails the inclusion check afterwards.
func (v *Verifier) verifyQuery(proof *Proof, s *session, query *QueryProof) error {
	// Index bookkeeping: the initial index must fall inside the
	// initial domain, and every round's recorded indices must follow
	// from it by pure domain arithmetic.
	if query.InitialIndex < 0 || query.InitialIndex >= proof.Layers[0].DomainSize {
		return fmt.Errorf("initial index %d outside initial domain of order %d: %w",
			query.InitialIndex, proof.Layers[0].DomainSize, ErrMalformedProof)
	}
	index := query.InitialIndex
	for r, round := range query.Rounds {
		n := s.domains[r].Order()
		index = index % n
		symIndex, err := s.domains[r].PairedIndex(index)
		if err != nil {
			return err
		}
		if round.Index != index || round.SymIndex != symIndex {
			return fmt.Errorf("round %d records indices (%d, %d), expected (%d, %d): %w",
				r, round.Index, round.SymIndex, index, symIndex, ErrMalformedProof)
		}
	}

	// Folding equations across consecutive layers. With v0 = p(x) and
	// v1 = p(-x), the even and odd parts at x^2 are (v0+v1)/2 and
	// (v0-v1)/(2x), and the next layer must hold even + beta*odd.
	for r := 0; r < len(query.Rounds)-1; r++ {
		round := &query.Rounds[r]
		x, err := s.domains[r].ElementAt(round.Index)
		if err != nil {
			return err
		}

		v0 := v.field.ElementFromBytes(round.Value)
		v1 := v.field.ElementFromBytes(round.SymValue)

		even := v0.Add(v1).Mul(s.twoInv)
		xInv, err := x.Inv()
		if err != nil {
			return fmt.Errorf("round %d: domain element at index %d is zero: %w",
				r, round.Index, err)
		}
		odd := v0.Sub(v1).Mul(s.twoInv).Mul(xInv)

		folded := even.Add(s.betas[r].Mul(odd))
		next := v.field.ElementFromBytes(query.Rounds[r+1].Value)
		if !folded.Equal(next) {
			return fmt.Errorf("round %d index %d: folded value %s, committed %s: %w",
				r, round.Index, folded, next, ErrFoldingEquationMismatch)
		}
	}

	// The chain terminates in the final polynomial: both openings of
	// the last layer must match its direct evaluation.
	last := len(query.Rounds) - 1
	finalRound := &query.Rounds[last]
	finalDomain := s.domains[last]

	xFinal, err := finalDomain.ElementAt(finalRound.Index)
	if err != nil {
		return err
	}
	if !s.finalPoly.Eval(xFinal).Equal(v.field.ElementFromBytes(finalRound.Value)) {
		return fmt.Errorf("round %d index %d: final polynomial mismatch: %w",
			last, finalRound.Index, ErrFoldingEquationMismatch)
	}
	xSym, err := finalDomain.ElementAt(finalRound.SymIndex)
	if err != nil {
		return err
	}
	if !s.finalPoly.Eval(xSym).Equal(v.field.ElementFromBytes(finalRound.SymValue)) {
		return fmt.Errorf("round %d index %d: final polynomial mismatch: %w",
			last, finalRound.SymIndex, ErrFoldingEquationMismatch)
	}

	// Inclusion proofs for every opening against the layer roots,
	// bound to the round's recorded indices.
	for r, round := range query.Rounds {
		root := proof.Layers[r].Root
		if !VerifyOpening(root, round.Index, v.field.ElementFromBytes(round.Value), round.Proof, proof.HashFunction) {
			return fmt.Errorf("round %d index %d: %w", r, round.Index, ErrInclusionProofInvalid)
		}
		if !VerifyOpening(root, round.SymIndex, v.field.ElementFromBytes(round.SymValue), round.SymProof, proof.HashFunction) {
			return fmt.Errorf("round %d index %d: %w", r, round.SymIndex, ErrInclusionProofInvalid)
		}
	}

	return nil
}
