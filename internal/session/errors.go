package session

import "errors"

var (
	// ErrUnknownStorageDriver is returned for an unsupported session storage driver.
	ErrUnknownStorageDriver = errors.New("unknown session storage driver")

	// ErrNoStorage is returned when a manager is created without durable storage.
	ErrNoStorage = errors.New("session storage is required")

	// ErrEmptySessionID is returned when a session is requested without id.
	ErrEmptySessionID = errors.New("session id can not be empty")

	// ErrInvalidIdentifier is returned when the persisted principal id is not a number.
	ErrInvalidIdentifier = errors.New("persisted principal identifier is not numeric")
)
