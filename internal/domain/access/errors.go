package access

import "errors"

var (
	ErrPathForbidden      = errors.New("role has no access to this page")
	ErrRoleForbidden      = errors.New("role is not allowed on this endpoint")
	ErrPathUnsafe         = errors.New("request path contains unsafe sequences")
	ErrOwnershipViolation = errors.New("record is not owned by the requesting user")
)
