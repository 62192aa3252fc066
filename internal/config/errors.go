package config

import "strings"

// ValidationError collects every configuration problem found during Validate.
// It is fatal: the pipeline refuses to start, so no cost is ever incurred for
// a misconfigured channel.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

// Empty reports whether no problems were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Problems) == 0
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid configuration"
	}
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}
