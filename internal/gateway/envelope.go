package gateway

import (
	"encoding/json"
	"net/http"

	"huddle/shared/failure"
)

// Request is the wire shape of one protocol call.
type Request struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
}

// ErrorBody carries a failed operation outcome inside a well-formed
// response. Transport-level errors are reserved for transport problems.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Response is the wire shape of one protocol outcome. Exactly one of
// Result and Error is set.
type Response struct {
	Result any        `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ResultEnvelope wraps a successful operation result.
func ResultEnvelope(result any) Response {
	return Response{Result: result}
}

// ErrorEnvelope wraps a failed operation. Internal errors are masked so
// driver and stack detail never reaches the caller.
func ErrorEnvelope(err error) Response {
	code := failure.GetCode(err)

	message := err.Error()
	if code >= http.StatusInternalServerError {
		message = "internal error"
	}

	return Response{Error: &ErrorBody{Code: code, Message: message}}
}
