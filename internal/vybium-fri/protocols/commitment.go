package protocols

import (
	"fmt"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
)

// Commitment binds an evaluation vector over a domain to a Merkle
// root. The owning prover keeps the full vector and tree for the
// lifetime of the session so that queried positions can be opened
// later; the verifier only ever sees the root and individual openings.
type Commitment struct {
	domain      *core.Domain
	evaluations []*core.FieldElement
	tree        *core.MerkleTree
	hashFunc    string
}

// Commit builds the Merkle tree over the evaluation vector, ordered by
// domain index
func Commit(domain *core.Domain, evaluations []*core.FieldElement, hashFunc string) (*Commitment, error) {
	if len(evaluations) != domain.Order() {
		return nil, fmt.Errorf("evaluation vector length %d does not match domain order %d",
			len(evaluations), domain.Order())
	}

	leaves := make([][]byte, len(evaluations))
	for i, eval := range evaluations {
		leaves[i] = eval.Bytes()
	}

	tree, err := core.NewMerkleTree(leaves, hashFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to build commitment tree: %w", err)
	}

	return &Commitment{
		domain:      domain,
		evaluations: evaluations,
		tree:        tree,
		hashFunc:    hashFunc,
	}, nil
}

// Root returns the commitment digest
func (c *Commitment) Root() []byte {
	return c.tree.Root()
}

// Domain returns the domain the committed evaluations were computed
// over
func (c *Commitment) Domain() *core.Domain {
	return c.domain
}

// Evaluation returns the committed value at the given domain index
func (c *Commitment) Evaluation(index int) (*core.FieldElement, error) {
	if index < 0 || index >= len(c.evaluations) {
		return nil, fmt.Errorf("evaluation index %d outside [0, %d): %w",
			index, len(c.evaluations), core.ErrIndexOutOfRange)
	}
	return c.evaluations[index], nil
}

// Open reveals the value at the given domain index together with its
// Merkle inclusion proof
func (c *Commitment) Open(index int) (*core.FieldElement, []core.ProofNode, error) {
	value, err := c.Evaluation(index)
	if err != nil {
		return nil, nil, err
	}
	proof, err := c.tree.Proof(index)
	if err != nil {
		return nil, nil, err
	}
	return value, proof, nil
}

// VerifyOpening checks a single opened value against a commitment
// root at the claimed domain index. Pure function, shared by the
// verifier for every layer.
func VerifyOpening(root []byte, index int, value *core.FieldElement, proof []core.ProofNode, hashFunc string) bool {
	return core.VerifyProof(root, value.Bytes(), index, proof, hashFunc)
}
