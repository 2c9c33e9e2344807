package domain

// Context is the mutable mapping handed to translated units. Units translated
// with sharing enabled all receive the same instance by reference; units that
// opt out receive a private empty one. It is not safe for concurrent mutation;
// the system assumes a single logical translation thread.
type Context map[string]any

// NewContext returns a fresh empty context.
func NewContext() Context {
	return Context{}
}
