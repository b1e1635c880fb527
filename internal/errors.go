package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidModule    ErrorCode = "INVALID_MODULE"

	ErrCodeModuleAccessDenied     ErrorCode = "MODULE_ACCESS_DENIED"
	ErrCodePermissionDenied       ErrorCode = "PERMISSION_DENIED"
	ErrCodeDepartmentAccessDenied ErrorCode = "DEPARTMENT_ACCESS_DENIED"

	ErrCodeCompanyNotFound      ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeCompanyInactive      ErrorCode = "COMPANY_INACTIVE"
	ErrCodeSubscriptionExpired  ErrorCode = "SUBSCRIPTION_EXPIRED"
	ErrCodeUserLimitReached     ErrorCode = "USER_LIMIT_REACHED"
	ErrCodeEmployeeLimitReached ErrorCode = "EMPLOYEE_LIMIT_REACHED"
	ErrCodeVehicleLimitReached  ErrorCode = "VEHICLE_LIMIT_REACHED"
	ErrCodeDepartmentLimitReached ErrorCode = "DEPARTMENT_LIMIT_REACHED"

	ErrCodeEmployeeNotFound   ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeVehicleNotFound    ErrorCode = "VEHICLE_NOT_FOUND"
	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeDocumentNotFound   ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"

	ErrCodeDuplicateEmail        ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateEmployeeCode ErrorCode = "DUPLICATE_EMPLOYEE_CODE"
	ErrCodeDuplicateNationalID   ErrorCode = "DUPLICATE_NATIONAL_ID"
	ErrCodeDuplicatePlateNumber  ErrorCode = "DUPLICATE_PLATE_NUMBER"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrModuleAccessDenied     = NewForbiddenError("no access to this module", ErrCodeModuleAccessDenied)
	ErrPermissionDenied       = NewForbiddenError("insufficient permissions for this action", ErrCodePermissionDenied)
	ErrDepartmentAccessDenied = NewForbiddenError("no access to this department", ErrCodeDepartmentAccessDenied)

	ErrCompanyNotFound     = NewNotFoundError("Company not found", ErrCodeCompanyNotFound)
	ErrCompanyInactive     = NewForbiddenError("Company is not active", ErrCodeCompanyInactive)
	ErrSubscriptionExpired = NewForbiddenError("Company subscription has expired", ErrCodeSubscriptionExpired)

	ErrUserLimitReached     = NewForbiddenError("user limit reached for this company", ErrCodeUserLimitReached)
	ErrEmployeeLimitReached = NewForbiddenError("employee limit reached for this company", ErrCodeEmployeeLimitReached)
	ErrVehicleLimitReached  = NewForbiddenError("vehicle limit reached for this company", ErrCodeVehicleLimitReached)
	ErrDepartmentLimitReached = NewForbiddenError("department limit reached for this company", ErrCodeDepartmentLimitReached)

	ErrEmployeeNotFound   = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrVehicleNotFound    = NewNotFoundError("Vehicle not found", ErrCodeVehicleNotFound)
	ErrDepartmentNotFound = NewNotFoundError("Department not found", ErrCodeDepartmentNotFound)
	ErrDocumentNotFound   = NewNotFoundError("Document not found", ErrCodeDocumentNotFound)
	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)

	ErrDuplicateEmail        = NewConflictError("email already registered for this company", ErrCodeDuplicateEmail)
	ErrDuplicateEmployeeCode = NewConflictError("employee code already used in this company", ErrCodeDuplicateEmployeeCode)
	ErrDuplicateNationalID   = NewConflictError("national id already registered in this company", ErrCodeDuplicateNationalID)
	ErrDuplicatePlateNumber  = NewConflictError("plate number already registered in this company", ErrCodeDuplicatePlateNumber)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
