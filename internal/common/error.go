package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status code constants
const (
	// Success codes (2xx)
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	// Client error codes (4xx)
	StatusBadRequest       = 400
	StatusUnauthorized     = 401
	StatusForbidden        = 403
	StatusNotFound         = 404
	StatusMethodNotAllowed = 405
	StatusConflict         = 409
	StatusTooManyRequests  = 429

	// Server error codes (5xx)
	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

// Response messages
const (
	MsgSuccess   = "Operation successful"
	MsgCreated   = "Created successfully"
	MsgNoContent = "No content"

	MsgBadRequest         = "Invalid request"
	MsgUnauthorized       = "Please sign in"
	MsgForbidden          = "Access denied"
	MsgNotFound           = "Resource not found"
	MsgTooManyRequests    = "Too many requests"
	MsgInternalError      = "Internal system error"
	MsgServiceUnavailable = "Service unavailable"

	MsgTokenMissing = "Missing authentication token"
	MsgTokenInvalid = "Invalid token"
	MsgTokenExpired = "Token has expired"

	MsgValidationError = "Invalid data"
	MsgDatabaseError   = "Database interaction error"
	MsgNoRecords       = "No records available"
)

// ErrorCode defines a detailed error code
type ErrorCode struct {
	Code        string // Code identifier (e.g. AUTH_001)
	Category    string // Error category (e.g. Authentication)
	SubCategory string // Sub category (e.g. Token)
	Description string // Detailed description
}

// Hierarchical error code table
var (
	// System errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Internal system error",
	}

	// Authentication errors (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "General authentication error",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Token related error",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Login credentials error",
	}

	// Validation errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "General data validation error",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Invalid input data",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Invalid data format",
	}

	// Database errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "General database error",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Database connection error",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Data query error",
	}

	// Reporting errors (RPT_xxx)
	ErrCodeReport = ErrorCode{
		Code:        "RPT",
		Category:    "Report",
		SubCategory: "General",
		Description: "General reporting error",
	}

	ErrCodeReportFetch = ErrorCode{
		Code:        "RPT_001",
		Category:    "Report",
		SubCategory: "Fetch",
		Description: "Source collection read error",
	}

	ErrCodeReportExport = ErrorCode{
		Code:        "RPT_002",
		Category:    "Report",
		SubCategory: "Export",
		Description: "Report export error",
	}
)

// Error defines the detailed error structure returned through the API envelope
type Error struct {
	Code       ErrorCode // Detailed error code
	Message    string    // Error message
	StatusCode int       // HTTP status code
	Details    any       // Extra detail about the error
}

// Error returns the error message
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether the error matches target (errors.Is support)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError creates a new error with full detail
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Authentication errors
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Incorrect email or password", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, MsgTokenExpired, StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrUserNotFound       = NewError(ErrCodeAuthCredentials, "User account not found", StatusNotFound, nil)

	// Validation errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Invalid data format", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Missing required information", StatusBadRequest, nil)

	// Database errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Data not found", StatusNotFound, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable, nil)

	// Reporting errors
	ErrNoData        = NewError(ErrCodeReport, MsgNoRecords, StatusBadRequest, nil)
	ErrExportRefused = NewError(ErrCodeReportExport, "There is no data to export", StatusBadRequest, nil)
	ErrUnknownFormat = NewError(ErrCodeReportExport, "Unsupported export format", StatusBadRequest, nil)
)

// MongoDB specific errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "MongoDB connection error", StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, "Network error while connecting to MongoDB", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, "MongoDB connection timed out", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuth, "MongoDB authentication error", StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "MongoDB write error", StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, "Duplicate data in MongoDB", StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "MongoDB system error", StatusInternalServerError, nil)
)

// ConvertMongoError converts a MongoDB driver error into a system error
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Do not convert ErrNotFound, callers branch on it
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if appErr, ok := err.(*Error); ok {
		return appErr
	}

	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
