package approval

import "errors"

var (
	ErrRequestNotFound = errors.New("approval request not found")
	ErrNotPrivileged   = errors.New("only administrators may decide approval requests")
	ErrAlreadyDecided  = errors.New("approval request has already been decided")
)
