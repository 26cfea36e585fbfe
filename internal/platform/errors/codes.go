// Package errors provides structured error handling with machine codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Filesystem errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeWrongType        Code = "WRONG_TYPE"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeEncrypted        Code = "ENCRYPTED"
	CodeNotEncrypted     Code = "NOT_ENCRYPTED"

	// Interpreter errors
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"
	CodeMissingOperand Code = "MISSING_OPERAND"
	CodeInvalidAddress Code = "INVALID_ADDRESS"
	CodeUnknownApp     Code = "UNKNOWN_APPLICATION"

	// Access errors
	CodeAuthenticationFailed Code = "AUTHENTICATION_FAILED"
	CodeVPNNotConfigured     Code = "VPN_NOT_CONFIGURED"

	// Progression errors
	CodeStageTransitionDenied Code = "STAGE_TRANSITION_DENIED"

	// Storage errors
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)
