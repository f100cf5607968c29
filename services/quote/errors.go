package quote

import "errors"

var (
	ErrContactEmailRequired = errors.New("contact email is required for guest submissions")
	ErrInvalidContactEmail  = errors.New("contact email is not a valid email address")
)
