package picker

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required configuration missing at construction.
// It is not recoverable for the instance; the UI shows a static error view
// for the viewer's lifetime.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("picker: missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// LoadError reports an I/O or parse failure on the first dataset load. The
// viewer never retries; the caller must recreate the component.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("picker: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
