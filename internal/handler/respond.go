package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
)

// Outward messages. Nothing else is ever shown to clients on failure.
const (
	MsgBadRequest      = "Bad Request"
	MsgTooLarge        = "Request Entity Too Large"
	MsgNotFound        = "Not Found"
	MsgTooManyRequests = "Too Many Requests"
	MsgInternalError   = "Internal Server Error"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} body.
func WriteMessage(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, MessageResponse{Message: message})
}

// StatusFor maps an error to its HTTP status and outward message.
func StatusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, MsgTooLarge
	case apperrors.IsClientError(err):
		return http.StatusBadRequest, MsgBadRequest
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, MsgTooManyRequests
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

// WriteError writes the response StatusFor chooses for err.
func WriteError(w http.ResponseWriter, err error) int {
	code, message := StatusFor(err)
	WriteMessage(w, code, message)
	return code
}

// NotFound handles unmatched routes and methods.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteMessage(w, http.StatusNotFound, MsgNotFound)
}
