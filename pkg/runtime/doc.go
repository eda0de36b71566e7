// Package runtime evaluates match expressions over runtime values.
package runtime

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("match.runtime")
}
