package rotation

import "errors"

var (
	ErrRotationNotFound = errors.New("rotation not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrMemberExists     = errors.New("user already in rotation")
	ErrNotMember        = errors.New("user not in rotation")
)
