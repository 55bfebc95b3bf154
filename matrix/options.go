// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for text ingestion and numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "strings"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultPlaceholder is the "no relationship" cell token; it parses as 0.
	DefaultPlaceholder = "-"

	// DefaultRequireSquare makes Parse reject non-square blocks.
	DefaultRequireSquare = true
)

// Option mutates Options; public APIs consume ...Option.
type Option func(*Options)

// Options holds the resolved ingestion policy. Fields are unexported;
// use the WithX constructors.
type Options struct {
	placeholders  map[string]struct{} // tokens parsed as 0
	requireSquare bool                // reject rows != cols
}

// WithPlaceholders replaces the placeholder token set (default {"-"}).
// Panics on an empty token or a token containing whitespace: such tokens can
// never be produced by the whitespace tokenizer.
func WithPlaceholders(tokens ...string) Option {
	var t string
	for _, t = range tokens {
		if t == "" || strings.ContainsAny(t, " \t\r\n") {
			panic("matrix: WithPlaceholders: token must be non-empty and contain no whitespace")
		}
	}

	return func(o *Options) {
		o.placeholders = make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			o.placeholders[tok] = struct{}{}
		}
	}
}

// WithRequireSquare toggles the square-shape requirement of Parse.
// Disable it to ingest rectangular blocks (e.g. for inspection); the solvers
// still reject them.
func WithRequireSquare(on bool) Option {
	return func(o *Options) { o.requireSquare = on }
}

// gatherOptions applies opts over the defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{
		placeholders:  map[string]struct{}{DefaultPlaceholder: {}},
		requireSquare: DefaultRequireSquare,
	}
	var opt Option
	for _, opt = range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// isPlaceholder reports whether tok is a configured placeholder.
func (o Options) isPlaceholder(tok string) bool {
	_, ok := o.placeholders[tok]

	return ok
}
