package service

import "errors"

var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError carries a message that is safe to show to clients.
type InvalidInputError struct {
	Message string
}

func invalidInput(msg string) error {
	return &InvalidInputError{Message: msg}
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Message
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
