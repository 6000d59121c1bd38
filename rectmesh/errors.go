package rectmesh

import "fmt"

// ValidationError reports invalid builder input. It is always returned
// before any engine call is made, so the engine state is untouched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Msg)
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StateError reports an operation called out of order, e.g. exporting
// the assembly index before any mesh has been generated.
type StateError struct {
	Op  string
	Msg string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}
