package appeal

import "errors"

var (
	ErrNotFound        = errors.New("appeal not found")
	ErrAlreadyResolved = errors.New("appeal already resolved")
	ErrUnknownType     = errors.New("unknown appeal type")
	ErrInvalidDecision = errors.New("invalid appeal decision")
	ErrMissingRelated  = errors.New("appeal has no related record")
)
