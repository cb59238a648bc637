package service

import "errors"

// Domain failures returned by the services. Handlers translate them to HTTP
// status codes; nothing below the handler layer knows about HTTP.
var (
	ErrDuplicateAccount = errors.New("account already registered")
	ErrUnauthenticated  = errors.New("could not validate credentials")
	ErrWrongCredentials = errors.New("incorrect account or password")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrNotFound         = errors.New("not found")
	ErrStorage          = errors.New("storage error")
	ErrUpdateFailed     = errors.New("update failed")
	ErrUploadDisabled   = errors.New("picture uploads are not configured")
)
