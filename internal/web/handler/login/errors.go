package login

import (
	"errors"
)

var (
	// ErrBadCredentials is returned for any username/password mismatch.
	ErrBadCredentials = errors.New("bad credentials")
)
