package catalog

import "fmt"

// ConfigError represents a catalog that could not be loaded. It is a startup error:
// a process holding one must not serve requests.
type ConfigError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog %s: %s", e.Path, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a catalog that is well-formed JSON but violates a catalog invariant
type ValidationError struct {
	Category string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("catalog validation error in %s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("catalog validation error: %s", e.Message)
}
