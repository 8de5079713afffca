package ir

import "fmt"

// ContractError reports a violated internal contract: an impossible input
// or a programming error, never a user-level problem. Components panic
// with a *ContractError; callers are not expected to recover.
//
// Tests assert on these with assert.PanicsWithError.
type ContractError struct {
	Component string
	Message   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Component, e.Message)
}

// Contractf builds a ContractError with a formatted message.
func Contractf(component, format string, args ...any) *ContractError {
	return &ContractError{Component: component, Message: fmt.Sprintf(format, args...)}
}
