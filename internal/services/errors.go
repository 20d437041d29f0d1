package services

import "errors"

// User-facing, recoverable conditions. Handlers translate these to HTTP
// statuses; anything else bubbling out of a service is a storage-level
// failure and surfaces as 500.
var (
	ErrMissingFields         = errors.New("all fields are required")
	ErrAlreadyRegistered     = errors.New("email already registered")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidOrExpiredCode  = errors.New("invalid or expired code")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid application id or password")
	ErrStageConflict         = errors.New("stage already submitted for this application")
	ErrMissingDocuments      = errors.New("photo and signature are required")
	ErrEmptyAcademicList     = errors.New("academic records are required")
	ErrInvalidSelection      = errors.New("invalid subject selection")
	ErrIncompleteApplication = errors.New("all steps must be completed before final submission")
	ErrAlreadySubmitted      = errors.New("application already submitted")
	ErrInvalidImage          = errors.New("unsupported or oversized image")
)
