package pipeline

import "fmt"

// State tracks the lifecycle of a pipeline run.
type State uint8

const (
	StateCreated State = iota
	StateLoaded
	StateCleaned
	StateValidated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateLoaded:
		return "loaded"
	case StateCleaned:
		return "cleaned"
	case StateValidated:
		return "validated"
	default:
		return "unknown"
	}
}

// InvalidStateError reports a stage or accessor called out of order.
type InvalidStateError struct {
	Op   string
	Want State
	Got  State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("pipeline: %s requires state >= %s, current state is %s", e.Op, e.Want, e.Got)
}

// NotLoadedError reports input that is absent or not tabular at load
// time.
type NotLoadedError struct {
	Msg string
	Err error
}

func (e *NotLoadedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("pipeline: %s", e.Msg)
}

func (e *NotLoadedError) Unwrap() error {
	return e.Err
}
