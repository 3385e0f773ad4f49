package vybiumfri

import (
	"github.com/vybium/vybium-fri/internal/vybium-fri/core"
	"github.com/vybium/vybium-fri/internal/vybium-fri/protocols"
	"github.com/vybium/vybium-fri/internal/vybium-fri/utils"
)

// FieldElement represents an element in a finite field
type FieldElement = core.FieldElement

// Field represents a finite field
type Field = core.Field

// Polynomial represents a dense univariate polynomial over a field
type Polynomial = core.Polynomial

// Domain represents a coset evaluation domain
type Domain = core.Domain

// Proof represents a complete FRI proof session artifact
type Proof = protocols.Proof

// Channel represents the Fiat-Shamir transcript channel
type Channel = utils.Channel

// Config represents the parameters of a FRI session
type Config = utils.Config

// DefaultConfig returns the default session parameters
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}
