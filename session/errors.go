package session

import "errors"

// ErrUnknownRefreshToken means the presented refresh token was already
// rotated, revoked, or never issued.
var ErrUnknownRefreshToken = errors.New("refresh token not recognized")
