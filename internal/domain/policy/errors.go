package policy

import "errors"

var (
	ErrPolicyNotFound = errors.New("no default shift policy configured")
)
