package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongHomePassword = errors.New("wrong home password")
	ErrNotAuthorized     = errors.New("not authorized")
)
