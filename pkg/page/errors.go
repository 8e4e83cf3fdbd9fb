package page

import "errors"

var (
	ErrElementNotFound = errors.New("page: required element not found")
	ErrTemplate        = errors.New("page: failed to load page template")
	ErrClosed          = errors.New("page: closed")
)
