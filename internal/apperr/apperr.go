package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the coach can surface to a user.
type Kind string

const (
	KindConfiguration     Kind = "configuration"
	KindUnsupportedType   Kind = "unsupported_type"
	KindEmptyContent      Kind = "empty_content"
	KindNoOutput          Kind = "no_output"
	KindUpstream          Kind = "upstream"
	KindNetwork           Kind = "network"
	KindRead              Kind = "read"
	KindMalformedResponse Kind = "malformed_response"
	KindBusy              Kind = "busy"
)

// Error is the single error type returned by the clients, the orchestrator and
// the conversation manager. Status and Body are only set for KindUpstream.
type Error struct {
	Kind   Kind
	Status int
	Body   string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Kind == KindUpstream && e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, so errors.Is(err, apperr.ErrNoOutput) works on any
// wrapped *Error. A target with a non-zero Status also has to match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

var (
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrUnsupportedType   = &Error{Kind: KindUnsupportedType}
	ErrEmptyContent      = &Error{Kind: KindEmptyContent}
	ErrNoOutput          = &Error{Kind: KindNoOutput}
	ErrUpstream          = &Error{Kind: KindUpstream}
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrRead              = &Error{Kind: KindRead}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrBusy              = &Error{Kind: KindBusy}
)

func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

func UnsupportedType(contentType string) *Error {
	if contentType == "" {
		contentType = "unknown"
	}
	return &Error{
		Kind: KindUnsupportedType,
		Msg:  fmt.Sprintf("unsupported file type: %s. Please upload a PDF or TXT file", contentType),
	}
}

func EmptyContent(msg string) *Error {
	return &Error{Kind: KindEmptyContent, Msg: msg}
}

func NoOutput(msg string) *Error {
	return &Error{Kind: KindNoOutput, Msg: msg}
}

func Upstream(msg string, status int, body string) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Status: status, Body: body}
}

func Network(msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Msg: msg, Err: err}
}

func Read(msg string, err error) *Error {
	return &Error{Kind: KindRead, Msg: msg, Err: err}
}

func Malformed(msg string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Msg: msg, Err: err}
}

func Busy(op string) *Error {
	return &Error{Kind: KindBusy, Msg: fmt.Sprintf("%s already in progress", op)}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage turns err into the short text shown in toasts and inline status.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	switch e.Kind {
	case KindConfiguration:
		return "The service is not configured: " + e.Msg
	case KindUnsupportedType, KindEmptyContent, KindRead:
		if e.Msg != "" {
			return e.Msg
		}
		return "The uploaded file could not be read."
	case KindNoOutput:
		return "No converted files received from the conversion service."
	case KindUpstream:
		if e.Msg != "" {
			return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
		}
		return fmt.Sprintf("The remote service failed with status %d.", e.Status)
	case KindNetwork:
		return "Network error. Please check your connection and try again."
	case KindMalformedResponse:
		return "The remote service returned an unexpected response."
	case KindBusy:
		return "Please wait, " + e.Msg + "."
	}
	return e.Error()
}

// HTTPStatus maps err onto the status code used by the JSON API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnsupportedType:
		return http.StatusUnsupportedMediaType
	case KindEmptyContent, KindRead:
		return http.StatusUnprocessableEntity
	case KindNoOutput, KindUpstream, KindMalformedResponse:
		return http.StatusBadGateway
	case KindNetwork:
		return http.StatusGatewayTimeout
	case KindBusy:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
