// Package layoutopt places departments into locations so that the total
// material handling effort, flow × distance summed over every ordered pair,
// is as small as possible (the quadratic assignment problem).
//
// 🚀 What is layoutopt?
//
//	A deterministic solver library with a CLI and an HTTP service on top:
//		• Exhaustive search: scans all n! layouts, globally optimal, optionally
//		  fanned out over goroutines
//		• Pairwise exchange: best-swap-per-round local search from the identity
//		  layout, with a full round-by-round trace
//		• Compare: runs both and reports the optimality gap
//
// Packages:
//
//	matrix/             square Dense matrices, the "-" text format, validators
//	qap/                cost evaluator, exhaustive and pairwise-exchange engines
//	internal/problem/   YAML/JSON problem documents
//	internal/render/    text (lipgloss), JSON and YAML reports
//	internal/config/    viper configuration (file + LAYOUTOPT_* env)
//	internal/logging/   slog text/JSON fan-out
//	internal/server/    gin HTTP API with Prometheus metrics
//	internal/cli/       cobra commands
//	cmd/layoutopt/      the binary
//
// Quick example, the classic 4-department instance:
//
//	layoutopt solve --sample
//	layoutopt solve --sample --algo pairwise
//	layoutopt compare --sample
//
//	go install github.com/katalvlaran/layoutopt/cmd/layoutopt@latest
package layoutopt
