package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyAPIBaseURL error if config api.baseurl is empty.
	ErrEmptyAPIBaseURL = errors.New("toml config api.baseurl can not be empty")

	// ErrUnknownStorageDriver error if config session.storage.driver is not supported.
	ErrUnknownStorageDriver = errors.New("toml config session.storage.driver is not supported")

	// ErrMissingConnectionURI error if a sql storage driver has no connection uri.
	ErrMissingConnectionURI = errors.New("toml config session.storage.connectionuri can not be empty")
)
