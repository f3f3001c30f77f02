package sudoapi

import (
	"github.com/senka-oj/senka"
)

var (
	ErrNoUpdates       = senka.ErrNoUpdates
	ErrMissingRequired = senka.ErrMissingRequired

	ErrNotFound     = senka.ErrNotFound
	ErrUnknownError = senka.ErrUnknownError
)

type StatusError = senka.StatusError

// Reimplement Statusf and WrapError functions here for faster reference

func Statusf(status int, format string, args ...any) *StatusError {
	return senka.Statusf(status, format, args...)
}

func WrapError(err error, text string) *StatusError {
	return senka.WrapError(err, text)
}
