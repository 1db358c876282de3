package celestial

import (
	"errors"
	"fmt"
)

// Causes wrapped by ConfigurationError. Match them with errors.Is.
var (
	ErrEmptyTable        = errors.New("empty body table")
	ErrDuplicateName     = errors.New("duplicate body name")
	ErrUnresolvedParent  = errors.New("unresolved parent")
	ErrCycle             = errors.New("parent cycle")
	ErrZeroValue         = errors.New("value must be non-zero")
	ErrInvalidValue      = errors.New("invalid value")
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// ConfigurationError reports a bad descriptor table. It is raised once while
// the table or the scene graph is built and is fatal to startup.
type ConfigurationError struct {
	Body   string // Offending body, empty for table-level problems
	Field  string // Offending field, empty when the whole record is at fault
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var where string
	switch {
	case e.Body != "" && e.Field != "":
		where = fmt.Sprintf("body %q field %s", e.Body, e.Field)
	case e.Body != "":
		where = fmt.Sprintf("body %q", e.Body)
	default:
		where = "body table"
	}
	if e.Reason != "" {
		return fmt.Sprintf("configuration error: %s: %s: %v", where, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", where, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(body, field string, cause error, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Body:   body,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
