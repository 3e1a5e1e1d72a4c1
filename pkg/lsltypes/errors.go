package lsltypes

import "errors"

// Error taxonomy of the interpreter. Callers wrap these with fmt.Errorf("%w")
// and test with errors.Is.
var (
	// ErrSyntax reports a line that cannot be tokenized, such as an
	// unterminated quoted string or a directive missing its operand.
	ErrSyntax = errors.New("syntax error")

	// ErrConfiguration reports an invalid layer request: unknown layer type,
	// missing required field or out-of-range value.
	ErrConfiguration = errors.New("configuration error")

	// ErrPackageNotFound reports a package name outside the registry.
	ErrPackageNotFound = errors.New("package not found")

	// ErrMissingModelContext reports a command that needs a model when none
	// resolves, either because no model exists yet or a named one is absent.
	ErrMissingModelContext = errors.New("missing model context")

	// ErrDuplicateModel reports a model creation under an existing name when
	// the registry is configured to reject duplicates.
	ErrDuplicateModel = errors.New("duplicate model")
)
