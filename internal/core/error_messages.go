package core

// error_messages.go maps build failures to a support code and a remediation
// hint. Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones.

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

var errorPatterns = []errorPattern{
	// =========================================================================
	// Source Errors (SRC001, FILE001-FILE003)
	// =========================================================================
	{
		pattern: "source not found",
		msg: UserMessage{
			Message: "Cleaned CSV not found",
			Action:  "Run the cleaning step first, or point CHARITIES_SOURCE_CSV at the cleaned file",
			Code:    "SRC001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The cleaned CSV is empty",
			Action:  "Re-run the cleaning step; the file needs at least a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The cleaned CSV could not be parsed",
			Action:  "Check quoting around the line named in the error",
			Code:    "FILE003",
		},
	},
	{
		pattern: "open source",
		msg: UserMessage{
			Message: "The cleaned CSV could not be opened",
			Action:  "Check read permissions on the file",
			Code:    "FILE001",
		},
	},

	// =========================================================================
	// Mirror Errors (MIR001-MIR003)
	// Only the mirror runs under a deadline; its errors are prefixed "mirror:".
	// =========================================================================
	{
		pattern: "mirror: connect",
		msg: UserMessage{
			Message: "Unable to connect to the mirror database",
			Action:  "Check MIRROR_DATABASE_URL and that PostgreSQL is reachable; the SQLite file is already complete",
			Code:    "MIR001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Mirror publish timed out",
			Action:  "Raise MIRROR_TIMEOUT and re-run",
			Code:    "MIR002",
		},
	},
	{
		pattern: "mirror:",
		msg: UserMessage{
			Message: "Mirror publish failed",
			Action:  "Check the mirror database logs; the SQLite file is already complete",
			Code:    "MIR003",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB004)
	// =========================================================================
	{
		pattern: "database or disk is full",
		msg: UserMessage{
			Message: "Not enough disk space for the database",
			Action:  "Free disk space and re-run",
			Code:    "DB001",
		},
	},
	{
		pattern: "disk i/o error",
		msg: UserMessage{
			Message: "The disk reported an I/O error",
			Action:  "Check the output volume and re-run",
			Code:    "DB002",
		},
	},
	{
		pattern: "readonly database",
		msg: UserMessage{
			Message: "No permission to write the database",
			Action:  "Check permissions on the output directory",
			Code:    "DB003",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "No permission to write the database",
			Action:  "Check permissions on the output directory",
			Code:    "DB003",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "The database file is in use by another process",
			Action:  "Close programs using the file and re-run",
			Code:    "DB004",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Fix the cause shown in the error and re-run",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
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

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
