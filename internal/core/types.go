package core

// StatusKind classifies events reported on a simulation status channel.
type StatusKind int

const (
	// StatusCascadeDisabled signals that a cascade failed to allocate its
	// buffers and will contribute nothing to the composed surface.
	StatusCascadeDisabled StatusKind = iota
	// StatusParameterRejected signals that a setter discarded an invalid
	// value and kept the previous one.
	StatusParameterRejected
)

// StatusEvent is a one-shot notification about degraded functionality.
// Events are advisory: the simulation keeps running without the affected
// piece.
type StatusEvent struct {
	Kind    StatusKind
	Cascade int
	Detail  string
}
