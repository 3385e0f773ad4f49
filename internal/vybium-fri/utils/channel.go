package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
)

// Channel simulates the verifier of the FRI protocol: a Fiat-Shamir
// transcript that turns the sequence of observed commitment roots into
// deterministic folding challenges and query positions.
//
// The state is a hash chain: every observation absorbs data into the
// state, every challenge is derived from the state and then advances
// it. A verifier that replays the same observations in the same order
// derives the same challenges. One channel serves exactly one session.
type Channel struct {
	state    []byte
	proof    []string
	hashFunc string

	// entropy, when set, replaces the transcript as the source of
	// query positions (self-sampling mode for tests and demos).
	// Challenge derivation always stays transcript-bound.
	entropy io.Reader

	// pendingBeta caches the challenge derived since the last
	// observation, making repeated derivations per round idempotent.
	pendingBeta *core.FieldElement
}

// NewChannel creates a new transcript-driven channel
func NewChannel(hashFunc string) *Channel {
	if hashFunc == "" {
		hashFunc = "sha3"
	}
	return &Channel{
		state:    []byte{0},
		proof:    make([]string, 0, 64),
		hashFunc: hashFunc,
	}
}

// NewSamplingChannel creates a channel whose query positions come from
// the given entropy source instead of the transcript. A nil reader
// falls back to crypto/rand.
func NewSamplingChannel(hashFunc string, entropy io.Reader) *Channel {
	ch := NewChannel(hashFunc)
	if entropy == nil {
		entropy = rand.Reader
	}
	ch.entropy = entropy
	return ch
}

// SelfSampling reports whether query positions come from injected
// entropy rather than the transcript
func (c *Channel) SelfSampling() bool {
	return c.entropy != nil
}

// ObserveCommitment absorbs a commitment root into the transcript and
// opens a new round for challenge derivation
func (c *Channel) ObserveCommitment(root []byte) {
	c.proof = append(c.proof, fmt.Sprintf("observe:%s", hex.EncodeToString(root)))
	c.state = c.hash(append(append([]byte{}, c.state...), root...))
	c.pendingBeta = nil
}

// randomInt derives an integer in [0, bound) from the transcript state
// and advances the state. bound must be positive.
func (c *Channel) randomInt(bound *big.Int) *big.Int {
	stateAsInt := new(big.Int).SetBytes(c.state)
	random := new(big.Int).Mod(stateAsInt, bound)
	c.state = c.hash(c.state)
	return random
}

// DeriveBeta derives the folding challenge of the current round from
// the transcript. The derivation is idempotent per round: repeated
// calls without an intervening ObserveCommitment return the same
// challenge, so prover and verifier replay agree regardless of how
// often either side asks.
func (c *Channel) DeriveBeta(field *core.Field) *core.FieldElement {
	if c.pendingBeta != nil {
		return c.pendingBeta
	}
	random := c.randomInt(field.Modulus())
	c.proof = append(c.proof, fmt.Sprintf("beta:%s", random))
	c.pendingBeta = field.NewElement(random)
	return c.pendingBeta
}

// SampleQueryIndices selects count distinct indices in [0, domainOrder).
// In transcript mode the positions are a deterministic function of the
// observed roots; in self-sampling mode they come from the entropy
// source. Duplicates are suppressed in both modes.
func (c *Channel) SampleQueryIndices(count, domainOrder int) ([]int, error) {
	if domainOrder <= 0 {
		return nil, fmt.Errorf("domain order must be positive")
	}
	if count > domainOrder {
		return nil, fmt.Errorf("cannot sample %d distinct indices from a domain of order %d",
			count, domainOrder)
	}

	bound := big.NewInt(int64(domainOrder))
	seen := make(map[int]bool, count)
	indices := make([]int, 0, count)

	for len(indices) < count {
		var draw *big.Int
		if c.entropy != nil {
			var buf [8]byte
			if _, err := io.ReadFull(c.entropy, buf[:]); err != nil {
				return nil, fmt.Errorf("entropy source failed: %w", err)
			}
			draw = new(big.Int).Mod(new(big.Int).SetUint64(binary.BigEndian.Uint64(buf[:])), bound)
		} else {
			draw = c.randomInt(bound)
		}

		index := int(draw.Int64())
		if seen[index] {
			continue
		}
		seen[index] = true
		indices = append(indices, index)
		c.proof = append(c.proof, fmt.Sprintf("query:%d", index))
	}

	return indices, nil
}

// State returns a copy of the current transcript state
func (c *Channel) State() []byte {
	return append([]byte(nil), c.state...)
}

// Proof returns the transcript log of channel operations
func (c *Channel) Proof() []string {
	return append([]string(nil), c.proof...)
}

// hash digests the input with the configured hash function
func (c *Channel) hash(data []byte) []byte {
	switch c.hashFunc {
	case "sha256":
		h := sha256.Sum256(data)
		return h[:]
	default:
		h := sha3.Sum256(data)
		return h[:]
	}
}
