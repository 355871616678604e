package utils

import (
	"encoding/json"
	"net/http"
)

// Detail mirrors the response shape of the original REST API: a single
// human-readable detail line, plus optional field errors.
type Detail struct {
	Detail string `json:"detail"`
	Errors any    `json:"errors,omitempty"`
}

// ResponseJSON writes an arbitrary JSON payload with a status code
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK with a detail message
func ResponseSuccess(w http.ResponseWriter, detail string) {
	ResponseJSON(w, http.StatusOK, Detail{Detail: detail})
}

// returns 200 OK with a raw payload
func ResponseOK(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusOK, payload)
}

// returns 201 Created with a detail message
func ResponseCreated(w http.ResponseWriter, detail string) {
	ResponseJSON(w, http.StatusCreated, Detail{Detail: detail})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, detail string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, Detail{Detail: detail, Errors: errors})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, detail string) {
	ResponseJSON(w, http.StatusUnauthorized, Detail{Detail: detail})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, detail string) {
	ResponseJSON(w, http.StatusNotFound, Detail{Detail: detail})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, detail string) {
	ResponseJSON(w, http.StatusInternalServerError, Detail{Detail: detail})
}
