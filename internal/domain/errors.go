// Package domain holds errors shared across layers.
package domain

import "errors"

// ErrNotAllowed means the actor lacks the required capability on the
// form. It is raised before any side effect executes.
var ErrNotAllowed = errors.New("actor lacks the required capability")
