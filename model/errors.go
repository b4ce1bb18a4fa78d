package model

import "errors"

// ErrNoContent is returned (wrapped) by a format builder when the container
// is structurally valid but yields zero parseable content units. This is the
// fatal arm of degradation: with nothing parsed there is nothing to render.
var ErrNoContent = errors.New("model: document contains no parseable content")
