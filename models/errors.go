package models

import "errors"

var (
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrResponseNotFound  = errors.New("response not found")
	ErrDuplicateResponse = errors.New("vendor has already responded to this quote")
	ErrQuoteClosed       = errors.New("quote is closed")
	ErrUserNotFound      = errors.New("user not found")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuoteNotFound) || errors.Is(err, ErrResponseNotFound) || errors.Is(err, ErrUserNotFound)
}
