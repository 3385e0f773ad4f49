package protocols

import "errors"

var (
	// ErrDegreeNotReduced is returned when folding does not reach the
	// final degree within the expected round count. This indicates a
	// configuration mismatch between the claimed degree bound and the
	// domain size, and is fatal for the session.
	ErrDegreeNotReduced = errors.New("folding did not reduce the degree within the expected rounds")

	// ErrInclusionProofInvalid is returned when a Merkle inclusion
	// proof inside a decommitment does not check out against the
	// layer's committed root.
	ErrInclusionProofInvalid = errors.New("merkle inclusion proof invalid")

	// ErrFoldingEquationMismatch is returned when the algebraic
	// folding relation between two consecutive layers does not hold at
	// a queried position.
	ErrFoldingEquationMismatch = errors.New("folding equation mismatch")

	// ErrQueryIndicesMismatch is returned when the query positions in
	// a proof do not match the positions the transcript dictates.
	ErrQueryIndicesMismatch = errors.New("query indices do not match the transcript")

	// ErrMalformedProof is returned when a proof record is internally
	// inconsistent before any cryptographic check runs.
	ErrMalformedProof = errors.New("malformed proof")
)
