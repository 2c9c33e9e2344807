package domain

// Names of the runtime package registered into the host interpreter.
// Generated artifacts import it and the loader registers its symbols, so the
// generator and the loader must agree on these exactly.
const (
	// RuntimePackage is the import path and alias of the interpreter runtime
	// package bound into every artifact.
	RuntimePackage = "weld"
	// RuntimeIncludeFunc performs a recursive translate-and-merge of the
	// named unit. Include directives are rewritten into calls to it.
	RuntimeIncludeFunc = "Include"
	// RuntimeSharedContextFunc returns the process-wide shared context.
	RuntimeSharedContextFunc = "SharedContext"
	// RuntimeNewContextFunc returns a fresh private context.
	RuntimeNewContextFunc = "NewContext"
)

// IncludeDirective is the dialect keyword that starts an include line.
// The keyword must be followed by a space and the unit name.
const IncludeDirective = "include "
