package core

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// MerkleTree commits to an ordered vector of byte-encoded leaves. The
// digest function is selectable by name so the tree and the channel
// can share one hash family.
type MerkleTree struct {
	root     []byte
	leaves   [][]byte
	levels   [][][]byte
	hashFunc string
}

// ProofNode represents one sibling hash on a Merkle inclusion path
type ProofNode struct {
	Hash    []byte `json:"hash"`
	IsRight bool   `json:"is_right"` // true if the sibling sits on the right
}

// NewMerkleTree creates a new Merkle tree from the given leaf data
func NewMerkleTree(data [][]byte, hashFunc string) (*MerkleTree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot create Merkle tree with empty data")
	}

	// Hash all leaves
	leaves := make([][]byte, len(data))
	for i, item := range data {
		leaves[i] = computeHash(item, hashFunc)
	}

	// Build tree levels
	levels := [][][]byte{leaves}
	currentLevel := leaves

	for len(currentLevel) > 1 {
		nextLevel := make([][]byte, 0, (len(currentLevel)+1)/2)

		for i := 0; i < len(currentLevel); i += 2 {
			var combined []byte
			if i+1 < len(currentLevel) {
				combined = append(append([]byte{}, currentLevel[i]...), currentLevel[i+1]...)
			} else {
				// Odd level width, pair the last node with itself
				combined = append(append([]byte{}, currentLevel[i]...), currentLevel[i]...)
			}
			nextLevel = append(nextLevel, computeHash(combined, hashFunc))
		}

		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &MerkleTree{
		root:     currentLevel[0],
		leaves:   leaves,
		levels:   levels,
		hashFunc: hashFunc,
	}, nil
}

// Root returns the Merkle root digest
func (mt *MerkleTree) Root() []byte {
	return append([]byte(nil), mt.root...)
}

// NumLeaves returns the number of committed leaves
func (mt *MerkleTree) NumLeaves() int {
	return len(mt.leaves)
}

// Proof generates the inclusion proof for the leaf at the given index
func (mt *MerkleTree) Proof(index int) ([]ProofNode, error) {
	if index < 0 || index >= len(mt.leaves) {
		return nil, fmt.Errorf("leaf index %d outside [0, %d): %w",
			index, len(mt.leaves), ErrIndexOutOfRange)
	}

	var proof []ProofNode
	currentIndex := index

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		var siblingIndex int
		var isRight bool
		if currentIndex%2 == 0 {
			siblingIndex = currentIndex + 1
			isRight = true
		} else {
			siblingIndex = currentIndex - 1
			isRight = false
		}

		if siblingIndex < len(currentLevel) {
			proof = append(proof, ProofNode{
				Hash:    currentLevel[siblingIndex],
				IsRight: isRight,
			})
		} else {
			// Unpaired node, its sibling is itself
			proof = append(proof, ProofNode{
				Hash:    currentLevel[currentIndex],
				IsRight: true,
			})
		}

		currentIndex /= 2
	}

	return proof, nil
}

// VerifyProof checks a Merkle inclusion proof against a root for the
// leaf at the claimed index. It is a pure function: the tree itself is
// not needed, only the root, the raw leaf data and the sibling path.
//
// The path is bound to the index: a node's sibling sits on the right
// exactly when the node's position at that level is even, so a valid
// path for one leaf cannot be replayed for another.
func VerifyProof(root, leaf []byte, index int, proof []ProofNode, hashFunc string) bool {
	if index < 0 {
		return false
	}

	hash := computeHash(leaf, hashFunc)

	for _, node := range proof {
		if node.IsRight != (index%2 == 0) {
			return false
		}
		var combined []byte
		if node.IsRight {
			combined = append(append([]byte{}, hash...), node.Hash...)
		} else {
			combined = append(append([]byte{}, node.Hash...), hash...)
		}
		hash = computeHash(combined, hashFunc)
		index /= 2
	}

	// A surviving quotient means the claimed index exceeds the leaf
	// count the path can attest to.
	return index == 0 && bytes.Equal(hash, root)
}

// computeHash digests the input with the named hash function. Unknown
// names fall back to sha3, matching the channel's default.
func computeHash(data []byte, hashFunc string) []byte {
	switch hashFunc {
	case "sha256":
		h := sha256.Sum256(data)
		return h[:]
	default:
		h := sha3.Sum256(data)
		return h[:]
	}
}
