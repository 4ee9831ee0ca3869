// Package apperrors classifies translation failures. Every error carries a
// message that is safe to show in the target pane or print from the CLI;
// the upstream cause stays reachable through errors.Unwrap for logging.
package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindEmptyInput        Kind = "empty_input"
	KindMissingCredential Kind = "missing_credential"
	KindCanceled          Kind = "canceled"
	KindTransient         Kind = "transient"
	KindRateLimit         Kind = "rate_limit"
	KindAuth              Kind = "auth"
	KindValidation        Kind = "validation"
	KindBadRequest        Kind = "bad_request"
)

var safeMessages = map[Kind]string{
	KindEmptyInput:        "Nothing to translate.",
	KindMissingCredential: "API key is missing. Please enter it in Settings or set GEMINI_API_KEY.",
	KindCanceled:          "Translation canceled.",
	KindTransient:         "Temporary upstream error. Please try again.",
	KindRateLimit:         "Rate limit exceeded. Please try again later.",
	KindAuth:              "Authentication failed. Please verify your API key and permissions.",
	KindValidation:        "Response validation failed.",
	KindBadRequest:        "Request rejected by upstream API.",
}

// Kinds raised by the translation backend rather than by local checks.
var backendKinds = map[Kind]bool{
	KindTransient:  true,
	KindRateLimit:  true,
	KindAuth:       true,
	KindValidation: true,
	KindBadRequest: true,
}

// Error pairs a user-safe message with the internal cause.
type Error struct {
	Kind        Kind
	SafeMessage string
	Cause       error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return messageFor(e.Kind, e.SafeMessage)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func messageFor(kind Kind, msg string) string {
	if msg = strings.TrimSpace(msg); msg != "" {
		return msg
	}
	if msg, ok := safeMessages[kind]; ok {
		return msg
	}
	return "Request failed."
}

// New returns an *Error. An empty safeMessage falls back to the kind's
// default text.
func New(kind Kind, safeMessage string, cause error) error {
	return &Error{Kind: kind, SafeMessage: messageFor(kind, safeMessage), Cause: cause}
}

func EmptyInput() error           { return New(KindEmptyInput, "", nil) }
func MissingCredential() error    { return New(KindMissingCredential, "", nil) }
func Canceled(cause error) error  { return New(KindCanceled, "", cause) }
func Transient(cause error) error { return New(KindTransient, "", cause) }

func Validation(cause error) error { return New(KindValidation, "", cause) }

// KindOf finds the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// PublicMessage is the text to show a user for err.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsBackend reports whether err came from the translation backend.
// Unclassified errors count as backend failures.
func IsBackend(err error) bool {
	if err == nil {
		return false
	}
	k, ok := KindOf(err)
	return !ok || backendKinds[k]
}

// Retryable reports whether trying the same request again may succeed.
func Retryable(err error) bool {
	k, _ := KindOf(err)
	return k == KindTransient || k == KindRateLimit
}
