package sequence

import "errors"

// ErrRangeTooLarge reports an expansion request over more frames than
// Expand is willing to allocate.
var ErrRangeTooLarge = errors.New("frame range too large")
