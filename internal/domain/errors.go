package domain

import "errors"

var (
	ErrNotFound                 = errors.New("resource not found")
	ErrDocumentNotFound         = errors.New("document not found")
	ErrDepartmentNotFound       = errors.New("department not found")
	ErrParentDepartmentNotFound = errors.New("parent department does not exist")
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidTransition        = errors.New("illegal status transition")
	ErrVersionConflict          = errors.New("document was modified concurrently")
	ErrUnknownStatusCode        = errors.New("unknown status code")
	ErrDuplicateDocumentNumber  = errors.New("document number already exists for this kind")
	ErrDuplicateEmail           = errors.New("email already exists")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrUserInactive             = errors.New("user is inactive")
	ErrInsufficientRole         = errors.New("insufficient role for this action")
	ErrNotOutgoingDocument      = errors.New("operation requires an outgoing document")
)
