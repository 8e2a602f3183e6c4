// Package core provides the session service for the salary dashboard.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Export only the months you need and try again
//	          Patterns: "file too large"
//
//	FILE003 - Encoding error: File contains characters that could not be read
//	          Action: Save the file as CSV (UTF-8) and upload again
//	          Patterns: "encoding error"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a salary CSV file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Action: The previous data is still loaded. Upload a CSV with data rows
//	          Patterns: "empty file"
//
//	FILE006 - Source missing: The default salary file was not found
//	          Action: Upload a salary CSV to get started
//	          Patterns: "source file not found"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Another file is being loaded
//	         Action: Please wait a moment and try again
//	         Patterns: "ingestion busy"
//
//	UPL004 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout: Request timed out
//	         Action: Try again or upload a smaller file
//	         Patterns: "context deadline exceeded"
//
//	UPL006 - No data: No salary data has been loaded yet
//	         Action: Upload a salary CSV to get started
//	         Patterns: "no payroll dataset"
//
// # Employee Errors (EMP001-EMP099)
//
//	EMP001 - Unknown employee: Employee number not found
//	         Action: Check your EMP No and try again
//	         Patterns: "employee not found"
//
//	EMP002 - No record: No salary record for the selected month
//	         Action: Choose a month from your salary history
//	         Patterns: "salary record not found"
//
//	EMP003 - No period data: No data for the selected period
//	         Action: Choose a different year or month
//	         Patterns: "period not found"
//
//	EMP004 - Invalid number: Employee number must contain digits only
//	         Action: Enter your EMP No as shown on your payslip
//	         Patterns: "invalid employee number"
//
// # Session Errors (AUTH001-AUTH099)
//
//	AUTH001 - Not signed in: Please sign in with your employee number
//	          Action: Enter your EMP No to continue
//	          Patterns: "no token found", "token is unauthorized", "session required",
//	                    "validation failed"
//
//	AUTH002 - Session expired: Your session has expired
//	          Action: Sign in again with your EMP No
//	          Patterns: "token is expired", "exp not satisfied"
//
// # Preference Errors (PREF001-PREF099)
//
//	PREF001 - Invalid preference: That setting is not supported
//	          Action: Choose light or dark
//	          Patterns: "invalid preference"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgNotSignedIn = UserMessage{
		Message: "Please sign in with your employee number",
		Action:  "Enter your EMP No to continue",
		Code:    "AUTH001",
	}
	msgSessionExpired = UserMessage{
		Message: "Your session has expired",
		Action:  "Sign in again with your EMP No",
		Code:    "AUTH002",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE006)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Export only the months you need and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains characters that could not be read",
			Action:  "Save the file as CSV (UTF-8) and upload again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a salary CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "The previous data is still loaded. Upload a CSV with data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "source file not found",
		msg: UserMessage{
			Message: "The default salary file was not found",
			Action:  "Upload a salary CSV to get started",
			Code:    "FILE006",
		},
	},

	// =========================================================================
	// Upload Errors (UPL002-UPL006)
	// =========================================================================
	{
		pattern: "ingestion busy",
		msg: UserMessage{
			Message: "Another file is being loaded",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try again or upload a smaller file",
			Code:    "UPL005",
		},
	},
	{
		pattern: "no payroll dataset",
		msg: UserMessage{
			Message: "No salary data has been loaded yet",
			Action:  "Upload a salary CSV to get started",
			Code:    "UPL006",
		},
	},

	// =========================================================================
	// Employee Errors (EMP001-EMP004)
	// =========================================================================
	{
		pattern: "employee not found",
		msg: UserMessage{
			Message: "Employee number not found",
			Action:  "Check your EMP No and try again",
			Code:    "EMP001",
		},
	},
	{
		pattern: "salary record not found",
		msg: UserMessage{
			Message: "No salary record for the selected month",
			Action:  "Choose a month from your salary history",
			Code:    "EMP002",
		},
	},
	{
		pattern: "period not found",
		msg: UserMessage{
			Message: "No data for the selected period",
			Action:  "Choose a different year or month",
			Code:    "EMP003",
		},
	},
	{
		pattern: "invalid employee number",
		msg: UserMessage{
			Message: "Employee number must contain digits only",
			Action:  "Enter your EMP No as shown on your payslip",
			Code:    "EMP004",
		},
	},

	// =========================================================================
	// Session Errors (AUTH001-AUTH002)
	// =========================================================================
	{pattern: "token is expired", msg: msgSessionExpired},
	{pattern: "exp not satisfied", msg: msgSessionExpired},
	{pattern: "no token found", msg: msgNotSignedIn},
	{pattern: "token is unauthorized", msg: msgNotSignedIn},
	{pattern: "session required", msg: msgNotSignedIn},
	{pattern: "validation failed", msg: msgNotSignedIn},

	// =========================================================================
	// Preference and Rate Limiting (PREF001, RATE001)
	// =========================================================================
	{
		pattern: "invalid preference",
		msg: UserMessage{
			Message: "That setting is not supported",
			Action:  "Choose light or dark",
			Code:    "PREF001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Unmatched errors map to ERR000; nil maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
