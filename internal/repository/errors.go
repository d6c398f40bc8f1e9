package repository

import "errors"

var (
	ErrInvalidID      = errors.New("invalid id")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateName  = errors.New("game name already exists")
)
