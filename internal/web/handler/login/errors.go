package login

import "errors"

// ErrNilDependency is returned when Init gets a nil app or config.
var ErrNilDependency = errors.New("app or cfg is nil")
