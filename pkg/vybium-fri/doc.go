// Package vybiumfri provides a FRI (Fast Reed-Solomon IOP) low-degree
// test over a configurable prime field.
//
// A prover commits to a polynomial's evaluations over a coset domain,
// repeatedly folds the polynomial with challenges drawn from a
// Fiat-Shamir channel until it reaches a constant, and answers spot
// checks that a verifier audits against the committed Merkle roots and
// the folding relation.
//
// # Features
//
// - Commit/fold/decommit FRI layer protocol over injectable prime fields
// - Coset evaluation domains with constructor-validated negation symmetry
// - Merkle-tree commitments with inclusion-proof openings
// - Transcript-bound (Fiat-Shamir) challenge and query derivation
// - Typed verification failures distinguishing bad inclusion proofs
//   from folding inconsistencies
//
// # Quick Start
//
// Proving and verifying a low-degree claim:
//
//	config := vybiumfri.DefaultConfig()
//	prover, err := vybiumfri.NewProver(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := prover.Prove([]int64{3, 5, 2, 1})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := vybiumfri.Verify(config, proof); err != nil {
//		log.Fatal(err)
//	}
package vybiumfri
