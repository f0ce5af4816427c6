package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind groups API failures by how callers react to them.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindTransient  Kind = "transient"
	KindUnknown    Kind = "unknown"
)

// Domain conflicts the apply and profile screens map to specific guidance.
var (
	ErrAlreadyApplied    = errors.New("already applied to this job")
	ErrProfileIncomplete = errors.New("applicant profile incomplete")
	ErrResumeRequired    = errors.New("resume required")
)

// Error is the normalized failure returned by every wrapper.
type Error struct {
	Status           int
	Message          string
	Code             string
	ValidationErrors map[string]string
	Kind             Kind
	Reason           error
	Err              error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "An error occurred"
	}
	if len(e.ValidationErrors) == 0 {
		return msg
	}
	fields := make([]string, 0, len(e.ValidationErrors))
	for field := range e.ValidationErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.ValidationErrors[field]))
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the domain conflict sentinels.
func (e *Error) Is(target error) bool {
	return e.Reason != nil && e.Reason == target
}

// KindOf returns the kind of an *Error anywhere in the chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

func IsAuth(err error) bool      { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsTransient(err error) bool { return KindOf(err) == KindTransient }

// Structured codes the backend may send in the envelope's "code" field.
const (
	CodeAlreadyApplied    = "ALREADY_APPLIED"
	CodeProfileIncomplete = "PROFILE_INCOMPLETE"
	CodeResumeRequired    = "RESUME_REQUIRED"
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
)

// Classify derives the kind and domain reason of a failed response.
//
// A structured code wins. Without one, the reason falls back to substring
// checks on the free-text message ("already applied", then "profile", then
// "resume"). That fallback breaks as soon as the backend rewords a message, so
// every phrase it relies on is pinned by a fixture test. Field errors and 422
// always stay validation failures, and only 400, 403 and 409 consult the
// message.
func Classify(status int, code, message string, hasFieldErrors bool) (Kind, error) {
	kind := kindFromStatus(status, hasFieldErrors)
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case CodeAlreadyApplied:
		return KindConflict, ErrAlreadyApplied
	case CodeProfileIncomplete:
		return KindConflict, ErrProfileIncomplete
	case CodeResumeRequired:
		return KindConflict, ErrResumeRequired
	case CodeNotFound:
		return KindNotFound, nil
	case CodeValidation:
		return KindValidation, nil
	}

	if status == 0 || status >= 500 || status == http.StatusUnauthorized || kind == KindNotFound || kind == KindValidation {
		return kind, nil
	}

	var reason error
	switch status {
	case http.StatusBadRequest, http.StatusForbidden, http.StatusConflict:
		reason = reasonFromMessage(message)
	}
	if reason != nil {
		kind = KindConflict
	}
	if kind == KindUnknown && strings.Contains(strings.ToLower(message), "not found") {
		kind = KindNotFound
	}
	return kind, reason
}

func kindFromStatus(status int, hasFieldErrors bool) Kind {
	switch {
	case status == 0, status >= 500:
		return KindTransient
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case hasFieldErrors, status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindUnknown
	}
}

func reasonFromMessage(message string) error {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "already applied"):
		return ErrAlreadyApplied
	case strings.Contains(lower, "profile"):
		return ErrProfileIncomplete
	case strings.Contains(lower, "resume"):
		return ErrResumeRequired
	default:
		return nil
	}
}
