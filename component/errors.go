package component

import "fmt"

// LifecycleError reports which component and lifecycle phase failed.
type LifecycleError struct {
	Component string
	Phase     string // "initialize" | "start" | "stop"
	Err       error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("component %s: %s: %v", e.Component, e.Phase, e.Err)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}

func newLifecycleError(name, phase string, err error) *LifecycleError {
	return &LifecycleError{Component: name, Phase: phase, Err: err}
}
