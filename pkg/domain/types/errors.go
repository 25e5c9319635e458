package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagNotFound marks a registry lookup that matched nothing
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagConfig marks missing or invalid configuration
	ErrTagConfig = goerr.NewTag("config")

	// ErrTagPostcondition marks a step whose expected result is absent afterwards
	ErrTagPostcondition = goerr.NewTag("postcondition")

	// ErrTagCommand marks an external command that exited non-zero
	ErrTagCommand = goerr.NewTag("command")
)
