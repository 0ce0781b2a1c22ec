package models

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange reports a face that references a vertex the mesh does not have.
	ErrIndexOutOfRange = errors.New("face index out of range")
	// ErrEmptyPath is returned when a loader is given no path at all.
	ErrEmptyPath = errors.New("empty model path")
)

// ModelLoadError is returned by every loader. No mesh is produced when it is.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %q: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

func loadError(path string, err error) error {
	return &ModelLoadError{Path: path, Err: err}
}
