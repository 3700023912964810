// Package domain contains the core language model for bft.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// file loading, TOML/YAML parsing, or the terminal. Infra/adapters map
// into/from these types.
package domain
