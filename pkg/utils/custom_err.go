package utils

import "errors"

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidUsername    = errors.New("username must be alphanumeric")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoFile             = errors.New("no file supplied")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrPhotoProcessing    = errors.New("photo processing failed")
	ErrForbidden          = errors.New("forbidden")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDatabaseError      = errors.New("database error")
)
