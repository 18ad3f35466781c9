package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// MapTransportError maps errors raised before an HTTP status was received
// (dial failures, timeouts, canceled contexts) to AppError instances.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeNetwork,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeNetwork,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	return &AppError{
		Code:    ErrCodeNetwork,
		Message: "Could not reach the server. Please check your connection.",
		Cause:   err,
	}
}

// MapResponseError maps a non-2xx HTTP status and its response body to an
// AppError. The body is parsed for the backend's error shapes:
//   - {"detail": "message"}            (single message)
//   - {"field": ["msg", ...], ...}     (field-level validation messages)
//
// Unrecognized bodies fall back to a generic message for the status class.
func MapResponseError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AppError{
			Code:    ErrCodeAuth,
			Message: messageOrDefault(body, "Authentication required."),
		}
	case status == http.StatusNotFound:
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: messageOrDefault(body, "Resource not found."),
		}
	case status >= 400 && status < 500:
		return mapValidationBody(status, body)
	case status >= 500:
		return &AppError{
			Code:    ErrCodeServer,
			Message: fmt.Sprintf("The server returned an unexpected error (%d). Please try again.", status),
		}
	default:
		return &AppError{
			Code:    ErrCodeServer,
			Message: fmt.Sprintf("Unexpected response status %d.", status),
		}
	}
}

// mapValidationBody builds a validation error from a 4xx body, preferring the
// first field-level message so callers can point the user at the offending field.
func mapValidationBody(status int, body []byte) error {
	if detail := parseDetail(body); detail != "" {
		return &AppError{Code: ErrCodeValidation, Message: detail}
	}

	field, message := parseFieldErrors(body)
	if message != "" {
		return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
	}

	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("The server rejected the request (%d).", status),
	}
}

func messageOrDefault(body []byte, fallback string) string {
	if detail := parseDetail(body); detail != "" {
		return detail
	}
	return fallback
}

// parseDetail extracts the "detail" message the backend uses for single-error responses.
func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Detail)
}

// parseFieldErrors extracts the first field-level message from a
// {"field": ["msg", ...]} validation body. Fields are visited in sorted order
// so the chosen message is deterministic.
func parseFieldErrors(body []byte) (field, message string) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ""
	}

	fields := make([]string, 0, len(payload))
	for name := range payload {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	for _, name := range fields {
		var msgs []string
		if err := json.Unmarshal(payload[name], &msgs); err != nil || len(msgs) == 0 {
			continue
		}
		msg := strings.TrimSpace(msgs[0])
		if msg == "" {
			continue
		}
		return name, fmt.Sprintf("%s: %s", name, msg)
	}

	return "", ""
}
