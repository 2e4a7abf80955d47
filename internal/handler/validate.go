package handler

import (
	"context"
	"strings"
)

// FieldError carries the validation messages for one input field.
// Field order is the declaration order of the input's checks, so the
// formatted payload is deterministic.
type FieldError struct {
	Field    string
	Messages []string
}

// Validator is implemented by request inputs that can validate
// themselves. A nil or empty result means the input is valid.
type Validator interface {
	Validate(ctx context.Context) []FieldError
}

// CheckValid runs the validator and collapses any field errors into a
// single structured error envelope.
//
// One failing field: params is that field's name and message its first
// message. Several failing fields: params is the space-joined field
// names and message concatenates "field: first-message " per field.
// It never writes anything; the caller branches on the returned bool.
func CheckValid(ctx context.Context, v Validator) (bool, Envelope) {
	fieldErrors := v.Validate(ctx)
	if len(fieldErrors) == 0 {
		return true, Envelope{}
	}

	if len(fieldErrors) == 1 {
		fe := fieldErrors[0]
		return false, ErrorResponse("", fe.Field, firstMessage(fe))
	}

	names := make([]string, len(fieldErrors))
	var message strings.Builder
	for i, fe := range fieldErrors {
		names[i] = fe.Field
		message.WriteString(fe.Field)
		message.WriteString(": ")
		message.WriteString(firstMessage(fe))
		message.WriteString(" ")
	}
	return false, ErrorResponse("", strings.Join(names, " "), message.String())
}

// firstMessage tolerates a FieldError reported without messages.
func firstMessage(fe FieldError) string {
	if len(fe.Messages) == 0 {
		return "Invalid value."
	}
	return fe.Messages[0]
}
