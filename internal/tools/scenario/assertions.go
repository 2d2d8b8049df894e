package scenario

import (
	"fmt"
	"log"
)

// AssertionMode selects how expectation failures are handled.
type AssertionMode int

const (
	// AssertionStrict fails the run on the first unmet expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs unmet expectations and keeps running.
	AssertionLogOnly
)

// Assertions evaluates expectation failures according to its mode.
// Failf reports hard failures that stop the run in either mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf reports a failure that is fatal regardless of mode.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports an unmet expectation. In log-only mode the failure
// is logged and the run continues.
func (a Assertions) Assertf(format string, args ...any) error {
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("assertion: "+format, args...)
		}
		return nil
	}
	return fmt.Errorf(format, args...)
}
