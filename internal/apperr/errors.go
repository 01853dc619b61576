package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrDuplicateSlug   = errors.New("duplicate slug")
)
