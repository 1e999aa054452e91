package identity

import "errors"

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so responses do not leak which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")
