package errors

import (
	"fmt"
)

var (
	ErrNotFound       = fmt.Errorf("not found")
	ErrUnauthorized   = fmt.Errorf("unauthorized")
	ErrForbidden      = fmt.Errorf("forbidden")
	ErrInvalidInput   = fmt.Errorf("invalid input")
	ErrSaveInProgress = fmt.Errorf("save already in progress")
)
