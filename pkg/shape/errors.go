package shape

import "errors"

// Sentinel configuration errors. Every constructor failure is a
// [*ConfigurationError] wrapping one of these.
var (
	ErrNilSpec           = errors.New("expected exception must not be nil")
	ErrNilType           = errors.New("exception type must not be nil")
	ErrNotException      = errors.New("exception type must derive from BaseException")
	ErrInvalidTypeName   = errors.New("exception type name cannot be represented")
	ErrNoCriteria        = errors.New("matcher has nothing to match on")
	ErrNoChildren        = errors.New("group has no expected exceptions")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrUnwrappedMultiple = errors.New("allow_unwrapped with multiple expected exceptions")
	ErrUnwrappedNested   = errors.New("allow_unwrapped around a nested group")
	ErrUnwrappedCriteria = errors.New("allow_unwrapped with a group pattern or check")
	ErrFlattenNested     = errors.New("flatten_subgroups around a nested group")
)

// ConfigurationError reports an invalid shape at construction time.
type ConfigurationError struct {
	err    error
	detail string
}

func configError(err error, detail string) *ConfigurationError {
	return &ConfigurationError{err: err, detail: detail}
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return e.detail
}

// Unwrap returns the sentinel describing the violated rule.
func (e *ConfigurationError) Unwrap() error {
	return e.err
}
