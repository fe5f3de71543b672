package models

import "fmt"

// MissingRequiredInputError reports a required-nonzero fundamentals field
// that was absent, zero, or not finite. Fatal for the whole symbol.
type MissingRequiredInputError struct {
	Field  string
	Symbol string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("missing required input %q for %s", e.Field, e.Symbol)
}

// InvalidSymbolError reports a symbol that failed normalization.
type InvalidSymbolError struct {
	Symbol string
	Reason string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q: %s", e.Symbol, e.Reason)
}

// InvalidParameterError reports caller-supplied model parameters that
// violate a mathematical precondition. Fatal for that single model call;
// sibling models are unaffected.
type InvalidParameterError struct {
	Model     string
	Invariant string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter: %s", e.Model, e.Invariant)
}
