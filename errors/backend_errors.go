// api/errors/backend_errors.go
package errors

import "errors"

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrReportNotFound        = errors.New("report not found")
	ErrBackendUnavailable    = errors.New("remote backend unavailable")
	ErrInvalidSearchCriteria = errors.New("invalid search criteria")
	ErrInvalidPagination     = errors.New("invalid pagination parameters")
	ErrInternalServer        = errors.New("internal server error")
	ErrUnauthorized          = errors.New("unauthorized")
)
