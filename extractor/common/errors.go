package common

import "fmt"

// ConfigError reports a required setting that is missing or unusable.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// StructuralError reports input whose shape the parsers cannot index, such
// as a table narrower than expected or a header without a statement date.
type StructuralError struct {
	Page   int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Page < 0 {
		return "structural error: " + e.Reason
	}
	return fmt.Sprintf("structural error on page %d: %s", e.Page+1, e.Reason)
}

// ParseError is a recoverable token failure at a given line of a section.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
