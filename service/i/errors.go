package i

import "errors"

// ErrMazeNotFound is returned by readers when no stored maze has the requested id.
var ErrMazeNotFound = errors.New("maze not found")
