// Package validate checks a device model against structural rules.
//
// Validation is pure and advisory: it never mutates the model and never
// fails — every finding is returned as a Diagnostic. It is meant to run on
// the resolved model so that register overlap is judged against each
// peripheral's effective layout, but every rule is defensive enough to run
// on a raw model too.
//
// Rules are registered in a Registry, which supports disabling individual
// rules and overriding their severity. The rules subpackage provides the
// standard rule set and a ready-made default registry:
//
//	diags := rules.NewDefaultRegistry().Validate(dev)
package validate
