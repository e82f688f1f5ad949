package httputil

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"

	"linkup/internal/model"
)

// SuccessResponse is the envelope of every 2xx JSON body.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every error JSON body. Stack and Detail
// are populated in development only.
type ErrorResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	StatusCode    int    `json:"statusCode"`
	IsOperational bool   `json:"isOperational"`
	Detail        string `json:"detail,omitempty"`
	Stack         string `json:"stack,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing left to do but log.
			log.Printf("[HTTP] failed to encode response: %v", err)
		}
	}
}

// WriteSuccess writes the standard success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, SuccessResponse{Success: true, Message: message, Data: data})
}

// WriteAppError translates any error into the standard error envelope. A
// non-operational error is logged in full server-side and reported to the
// client generically unless running in development, where the cause and a
// stack are included to speed up debugging.
func WriteAppError(w http.ResponseWriter, err error, isDevelopment bool) {
	appErr := model.AsAppError(err)
	statusCode := appErr.StatusCode()

	status := "error"
	if statusCode < http.StatusInternalServerError {
		status = "fail"
	}

	message := appErr.Message
	if !appErr.Operational {
		log.Printf("[HTTP] non-operational error: %v", appErr)
		if !isDevelopment {
			message = "Something went wrong"
		}
	}

	resp := ErrorResponse{
		Status:        status,
		Message:       message,
		StatusCode:    statusCode,
		IsOperational: appErr.Operational,
	}
	if isDevelopment {
		if appErr.Err != nil {
			resp.Detail = appErr.Err.Error()
		}
		if !appErr.Operational {
			resp.Stack = string(debug.Stack())
		}
	}

	WriteJSON(w, statusCode, resp)
}
