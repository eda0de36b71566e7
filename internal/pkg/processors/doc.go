// Package processors checks typed match expressions: exhaustiveness,
// reachability of arms, overlapping ranges and consistency of or-pattern
// bindings. It also derives the arm-ordered decision plan handed to code
// generation.
//
// The analysis follows Maranget's usefulness algorithm. Typed patterns are
// first simplified into constructor applications over the scrutinee type
// (see simplifyPattern); the matrix of simplified rows is then specialized
// column by column. Integer, char and list columns have open universes which
// are split lazily into the classes the patterns of a column can tell apart.
package processors

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("match.checker")
}
