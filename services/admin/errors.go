package admin

import "errors"

var (
	ErrInvalidStatus = errors.New("status must be 'active' or 'blocked'")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD or RFC3339")
)
