package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgPack = "application/msgpack"
)

var (
	errUnsupportedContentType = errors.New("Content-Type header is not application/json or application/msgpack")
)

// DecodeRequestBody decodes JSON or Msgpack data from the request body into a struct
func DecodeRequestBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	contentType := r.Header.Get("Content-Type")
	// Handle possible charset in Content-Type
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	switch contentType {
	case ContentTypeJSON, "":
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return err
		}
		return nil
	case ContentTypeMsgPack:
		if err := msgpack.NewDecoder(r.Body).Decode(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return err
		}
		return nil
	default:
		http.Error(w, errUnsupportedContentType.Error(), http.StatusUnsupportedMediaType)
		return errUnsupportedContentType
	}
}

// WriteResponse encodes and writes a JSON or Msgpack response, chosen by the
// request's Accept header.
func WriteResponse(status int, w http.ResponseWriter, r *http.Request, v interface{}) error {
	if strings.Contains(r.Header.Get("Accept"), ContentTypeMsgPack) {
		w.Header().Set("Content-Type", ContentTypeMsgPack)
		w.WriteHeader(status)
		return msgpack.NewEncoder(w).Encode(v)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body returned for failed API calls.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a failure response with the given status.
func WriteError(status int, w http.ResponseWriter, r *http.Request, message string) {
	WriteResponse(status, w, r, ErrorResponse{Error: message})
}
