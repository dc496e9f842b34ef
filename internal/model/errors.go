package model

import "errors"

// Error taxonomy shared across services. Handlers map these onto HTTP status
// codes; core packages wrap them with context via fmt.Errorf("...: %w", err).
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrResourceExhausted  = errors.New("resource exhausted")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)
