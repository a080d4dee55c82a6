package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameTaken       = errors.New("username already registered")
	ErrInvalidCredentials  = errors.New("incorrect username or password")
	ErrUnauthorized        = errors.New("could not validate credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrAccountNotFound     = errors.New("user not found")
	ErrNoteNotFound        = errors.New("note not found")
	ErrUnauthenticated     = errors.New("no bearer token found")
	ErrUpstreamTimeout     = errors.New("service timeout")
	ErrUpstreamUnavailable = errors.New("service unavailable")
	ErrUpstreamError       = errors.New("service error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrRateLimited         = errors.New("too many requests")
	ErrInternal            = errors.New("internal server error")
)

// Token failures all match ErrInvalidToken under errors.Is.
var (
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrWrongTokenKind = fmt.Errorf("%w: unexpected token type", ErrInvalidToken)
)
