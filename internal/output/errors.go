package output

import "errors"

// ErrUnsupportedFormat is returned (wrapped) when a report format name is not registered.
var ErrUnsupportedFormat = errors.New("unsupported report format")
