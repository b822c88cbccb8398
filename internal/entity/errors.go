package entity

import "errors"

// ErrUnknownCategory is returned when a category id supplied for tagging does not exist.
var ErrUnknownCategory = errors.New("one or more categories do not exist")
