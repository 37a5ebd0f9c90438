package handlers

const (
	APIPrefix = "/api/v1"

	ErrInvalidJSON        = "Invalid JSON body"
	ErrInvalidID          = "Invalid id"
	ErrTooManyRequests    = "Too many requests, please try again later"
	ErrServiceUnavailable = "Service unavailable"
	ErrNotFound           = "Not found"
)
