package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

// ErrCodeUnknown is used for errors without a grlm error code.
const ErrCodeUnknown = "UNKNOWN"

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError, keeping the error code
// and, for API failures, the HTTP status.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	out := &JSONError{Code: ErrCodeUnknown, Message: err.Error()}

	var grlmErr *errors.Error
	if stderrors.As(err, &grlmErr) {
		out.Code = grlmErr.Code
		out.Message = grlmErr.Message
		out.Suggestion = grlmErr.Suggestion
	}

	var statusErr *ratelimit.StatusError
	if stderrors.As(err, &statusErr) {
		out.HTTPStatus = statusErr.StatusCode
	}
	return out
}
