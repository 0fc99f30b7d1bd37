package trainer

import "fmt"

// TrainError reports that a backend failed to produce a model.
type TrainError struct {
	Backend string
	Err     error
}

func (e *TrainError) Error() string {
	return fmt.Sprintf("train %s: %v", e.Backend, e.Err)
}

func (e *TrainError) Unwrap() error { return e.Err }

func trainErrf(backend, format string, args ...interface{}) *TrainError {
	return &TrainError{Backend: backend, Err: fmt.Errorf(format, args...)}
}

// PersistError reports a failure to save or load a model.
type PersistError struct {
	Op   string // "save" or "load"
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s model %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
