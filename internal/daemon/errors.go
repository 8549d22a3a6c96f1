package daemon

import "errors"

// ErrNilConfig is returned when a service is created without configuration.
var ErrNilConfig = errors.New("config is nil")
