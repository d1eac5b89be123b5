package config

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/logging"
)

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}

type errorBody struct {
	Response string `json:"response"`
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	body := errorBody{Response: message}
	if err != nil {
		body.Response = message + ", " + err.Error()
	}
	if httpStatusCode >= http.StatusInternalServerError {
		zap.S().Errorw(message, "error", err)
	} else {
		zap.S().Debugw(message, "status", httpStatusCode, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	json.NewEncoder(w).Encode(body)
}
