package activeexpr

import "github.com/epiforge/activeexpr/internal/active"

// Options is the structurally-compared configuration object: disposal policies and generated-capture-type listen switches. A
// nil *Options behaves as the all-defaults configuration.
type Options = active.Options

// ConstructedTypeKey identifies a constructor by the type it produces
// and its parameter list, for Options.DisposeConstructedTypes.
type ConstructedTypeKey = active.ConstructedTypeKey

// Fault is a captured exception: never propagated as a Go panic, always returned/stored as a
// value.
type Fault = active.Fault

