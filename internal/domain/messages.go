package domain

import (
	"errors"
	"strings"
)

// Friendly messages shown to console operators. Internal error text never
// reaches the page.
const (
	MsgDuplicate          = "This item already exists. Please use a different name or slug."
	MsgPermission         = "You do not have permission to perform this action."
	MsgRequiredFields     = "Please fill in all required fields."
	MsgReferenced         = "This item is referenced by other data and cannot be modified."
	MsgInvalidInput       = "Invalid input. Please check your data and try again."
	MsgInvalidCredentials = "Invalid email or password."
	MsgNotFound           = "The requested item could not be found."
	MsgGeneric            = "An error occurred. Please try again."
)

// UserMessage maps an error to the message shown in the console toast.
// Structured errors are classified by type and constraint kind; the text
// match at the end only covers errors that arrive without a structured code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var conflict *ConflictError
	var validation *ValidationError
	var denied *AccessDeniedError
	var notFound *NotFoundError

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.As(err, &conflict):
		if conflict.Constraint == ConstraintForeignKey {
			return MsgReferenced
		}
		return MsgDuplicate
	case errors.As(err, &validation):
		switch validation.Constraint {
		case ConstraintNotNull:
			return MsgRequiredFields
		case ConstraintCheck:
			return MsgInvalidInput
		}
		return validation.Message
	case errors.As(err, &denied):
		return MsgPermission
	case errors.As(err, &notFound):
		return MsgNotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return MsgDuplicate
	case strings.Contains(msg, "row-level security"), strings.Contains(msg, "permission denied"):
		return MsgPermission
	case strings.Contains(msg, "not-null"), strings.Contains(msg, "not null constraint"):
		return MsgRequiredFields
	case strings.Contains(msg, "foreign key"):
		return MsgReferenced
	case strings.Contains(msg, "invalid input syntax"):
		return MsgInvalidInput
	case strings.Contains(msg, "invalid login credentials"), strings.Contains(msg, "invalid email or password"):
		return MsgInvalidCredentials
	}
	return MsgGeneric
}
