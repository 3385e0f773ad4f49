// Command fri-demo runs one FRI low-degree test end to end over the
// prime field F_257 and logs every step: commit, fold, query sampling,
// decommitment verification, and finally tamper detection on a
// modified opening.
package main

import (
	"errors"
	"flag"
	"math/big"
	"os"

	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
	"github.com/vybium/vybium-fri/internal/vybium-fri/logger"
	"github.com/vybium/vybium-fri/internal/vybium-fri/protocols"
	"github.com/vybium/vybium-fri/internal/vybium-fri/utils"
)

func main() {
	proofPath := flag.String("o", "", "write the proof artifact as JSON to this file")
	flag.Parse()

	log := logger.Logger()

	// F_257 has a full order-256 two-adic multiplicative group
	// generated by 3. The demo polynomial is 3 + 5x + 2x^2 + x^3,
	// evaluated over an order-8 coset with offset 3.
	cfg := &utils.Config{
		FieldModulus:  big.NewInt(257),
		PrimitiveRoot: big.NewInt(3),
		TwoAdicity:    8,
		CosetOffset:   big.NewInt(3),
		BlowupFactor:  2,
		FinalDegree:   0,
		NumQueries:    4,
		HashFunction:  "sha3",
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	prover, err := protocols.NewProver(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create prover")
	}

	poly, err := core.NewPolynomialFromInt64(prover.Field(), []int64{3, 5, 2, 1})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build polynomial")
	}
	log.Info().
		Str("polynomial", poly.String()).
		Int("degree", poly.Degree()).
		Str("modulus", cfg.FieldModulus.String()).
		Msg("starting FRI session")

	channel := utils.NewChannel(cfg.HashFunction)
	proof, err := prover.Prove(poly, channel)
	if err != nil {
		log.Fatal().Err(err).Msg("proof generation failed")
	}

	for r, layer := range proof.Layers {
		log.Info().
			Int("round", r).
			Int("domain_order", layer.DomainSize).
			Hex("root", layer.Root).
			Msg("layer committed")
	}
	log.Info().
		Int("folding_rounds", proof.NumRounds()).
		Int("queries", len(proof.Queries)).
		Msg("proof generated")

	verifier, err := protocols.NewVerifier(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create verifier")
	}
	if err := verifier.VerifySession(proof); err != nil {
		log.Fatal().Err(err).Msg("honest proof rejected")
	}
	log.Info().Msg("honest proof verified")

	if *proofPath != "" {
		data, err := proof.Marshal()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to serialize proof")
		}
		if err := os.WriteFile(*proofPath, data, 0o644); err != nil {
			log.Fatal().Err(err).Msg("failed to write proof file")
		}
		log.Info().Str("path", *proofPath).Msg("proof written")
	}

	// Flip one bit of one opened evaluation and watch verification
	// pinpoint the inconsistency.
	proof.Queries[0].Rounds[1].Value[len(proof.Queries[0].Rounds[1].Value)-1] ^= 0x01
	err = verifier.VerifySession(proof)
	switch {
	case err == nil:
		log.Fatal().Msg("tampered proof was accepted")
	case errors.Is(err, protocols.ErrFoldingEquationMismatch):
		log.Info().Err(err).Msg("tampering detected as folding inconsistency")
	default:
		log.Info().Err(err).Msg("tampering detected")
	}
}
