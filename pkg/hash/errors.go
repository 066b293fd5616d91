package hash

import "errors"

var errInvalidDigestLength = errors.New("hash: decoded digest is not 32 bytes")
