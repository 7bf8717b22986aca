package sql

import (
	"errors"
)

var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidHierarchy = errors.New("invalid namespace hierarchy")
	ErrUnknownDialect   = errors.New("unknown dialect")
)
