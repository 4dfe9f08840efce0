package cli

import "github.com/m-mizutani/goerr/v2"

var (
	ErrMissingArgument = goerr.New("missing argument")
	ErrValidation      = goerr.New("validation failed")
)
