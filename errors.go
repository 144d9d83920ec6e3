package skipper

import "errors"

// ErrInvalidKey is returned by the const indexed-access operations when
// the requested key is not present in the container.
var ErrInvalidKey = errors.New("skipper: invalid key")
