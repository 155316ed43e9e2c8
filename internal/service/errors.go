package service

import "errors"

// ErrInvalidInput marks request validation failures; handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")
