// Package runtime exposes packed arrays to a host engine.
//
// Values cross the boundary as a VarLen32 (a u32 length prefix followed by the
// packed buffer) tagged with an element type. A Runtime wraps every array
// operation with structured logging and metrics, and can seal values into
// checksummed, optionally compressed datum envelopes for storage:
//
//	rt, err := runtime.New(runtime.WithCompression(format.CompressionZstd))
//	v, err := rt.FromLiteral("{{1,2},{3,4}}", format.TypeInt32)
//	sum, err := rt.Add(v, v)
//	text, err := rt.Print(sum) // {{2,4},{6,8}}
//
// A Runtime is immutable after New and safe for concurrent use.
package runtime
