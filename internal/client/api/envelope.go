package api

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ErrorInfo describes a failed call: a human-readable message, the raw
// backend-supplied details when present, and the HTTP status code
// (0 when no response was received at all).
type ErrorInfo struct {
	Message string
	Details json.RawMessage
	Status  int
}

// Envelope is the canonical result of every backend call. Exactly one of
// Success/Error is meaningful: on success Data carries the normalized
// payload and Error is nil, on failure Error is populated and Data is nil.
type Envelope struct {
	Success bool
	Status  string // backend "status" field, when present
	Message string // backend "message" field, when present
	Data    json.RawMessage
	Error   *ErrorInfo
}

// bookkeeping keys stripped from a body when no "data" object is present.
var bookkeepingKeys = []string{"status", "message", "success"}

// Normalize converts a raw backend outcome into an Envelope. It is a pure
// function of its inputs and never fails: transport errors, non-JSON
// bodies, and backend-signaled failures all come back as Success=false
// with a non-empty Error.Message.
//
// The backend speaks two legacy success conventions, status=="success"
// and success==true; both are honored. See DESIGN.md.
func Normalize(httpStatus int, body []byte, transportErr error) Envelope {
	if transportErr != nil {
		return Envelope{Error: &ErrorInfo{Message: transportErr.Error()}}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Envelope{Error: &ErrorInfo{Message: failureMessage("", httpStatus), Status: httpStatus}}
	}

	statusField := jsonString(raw["status"])
	message := jsonString(raw["message"])

	if statusField != "success" && !jsonBool(raw["success"]) {
		details := raw["error"]
		if details == nil {
			details = raw["errors"]
		}
		return Envelope{
			Status:  statusField,
			Message: message,
			Error: &ErrorInfo{
				Message: failureMessage(message, httpStatus),
				Details: details,
				Status:  httpStatus,
			},
		}
	}

	return Envelope{
		Success: true,
		Status:  statusField,
		Message: message,
		Data:    extractData(raw, body),
	}
}

// extractData picks the payload of a successful body, in priority order:
// the "data" container when present, otherwise whatever keys remain after
// stripping the bookkeeping ones, otherwise the body itself.
func extractData(raw map[string]json.RawMessage, body []byte) json.RawMessage {
	if d, ok := raw["data"]; ok && isContainer(d) {
		return d
	}

	rest := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		rest[k] = v
	}
	for _, k := range bookkeepingKeys {
		delete(rest, k)
	}
	if len(rest) > 0 {
		b, err := json.Marshal(rest)
		if err == nil {
			return b
		}
	}

	return body
}

// isContainer reports whether the raw value is a JSON object or array.
func isContainer(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) > 0 && (t[0] == '{' || t[0] == '[')
}

func failureMessage(message string, httpStatus int) string {
	if message != "" {
		return message
	}
	if s := http.StatusText(httpStatus); s != "" {
		return s
	}
	return "request failed"
}

func jsonString(v json.RawMessage) string {
	var s string
	if v != nil {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

func jsonBool(v json.RawMessage) bool {
	var b bool
	if v != nil {
		_ = json.Unmarshal(v, &b)
	}
	return b
}
