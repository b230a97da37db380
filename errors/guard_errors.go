// api/errors/guard_errors.go
package errors

import "errors"

var (
	ErrOperationBlocked    = errors.New("operation blocked by canonical guard")
	ErrInvalidOperation    = errors.New("invalid operation data")
	ErrAuditExportFailed   = errors.New("audit export failed")
	ErrDatabaseOperation   = errors.New("database operation failed")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTenantMemberMissing = errors.New("user is not a member of tenant")
)
